package store

import (
	"database/sql"
	"fmt"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

// IsProcessed 파일이 해당 종류로 이미 수집됐는지
func (s *Store) IsProcessed(filename string, kind model.DocumentKind) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM processed_files WHERE filename = ? AND file_type = ?",
		filename, string(kind),
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query processed_files: %w", err)
	}
	return true, nil
}

// markProcessed 처리 원장 기록. 중복 기록은 에러가 아니라 무시다
// (재실행 멱등성의 근거).
func markProcessed(tx *sql.Tx, filename string, kind model.DocumentKind) error {
	_, err := tx.Exec(
		"INSERT OR IGNORE INTO processed_files (filename, file_type) VALUES (?, ?)",
		filename, string(kind),
	)
	if err != nil {
		return fmt.Errorf("failed to record processed file: %w", err)
	}
	return nil
}

// CountProcessed 종류별 원장 건수
func (s *Store) CountProcessed(kind model.DocumentKind) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM processed_files WHERE file_type = ?", string(kind),
	).Scan(&count)
	return count, err
}
