package store

import (
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store SQLite 저장소
type Store struct {
	db *sql.DB
}

// New Store 생성. DB 파일 디렉터리가 없으면 만들고 스키마를 초기화한다.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// SQLite 는 단일 연결 권장
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close 연결 종료
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB 원시 연결 (트랜잭션 등 고급 용도)
func (s *Store) DB() *sql.DB {
	return s.db
}

// Reset 전체 재수집 모드: 원장과 종속 테이블을 모두 비운다.
// 기준 정보(sites/partners)까지 비워 다음 수집에서 다시 만든다.
func (s *Store) Reset() error {
	tables := []string{
		"processed_files",
		"tbm_participants",
		"tbm_logs",
		"risk_confirmations",
		"risk_items",
		"risk_docs",
		"attendance_logs",
		"partners",
		"sites",
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin reset tx: %w", err)
	}
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// TableCount 테이블 행 수
func (s *Store) TableCount(table string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	return count, err
}
