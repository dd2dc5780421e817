package store

import (
	"database/sql"
	"fmt"
)

// getOrCreateSite 현장명으로 id 조회, 없으면 생성.
// name 에 UNIQUE 제약이 있으므로 동시 생성 경쟁은 INSERT 실패로 떨어지고,
// 그 경우 조회로 재시도한다.
func getOrCreateSite(tx *sql.Tx, name string) (int64, error) {
	return getOrCreate(tx, "sites", name)
}

// getOrCreatePartner 협력사명으로 id 조회, 없으면 생성
func getOrCreatePartner(tx *sql.Tx, name string) (int64, error) {
	return getOrCreate(tx, "partners", name)
}

func getOrCreate(tx *sql.Tx, table, name string) (int64, error) {
	if name == "" {
		name = "Unknown"
	}

	var id int64
	err := tx.QueryRow("SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to look up %s: %w", table, err)
	}

	res, err := tx.Exec("INSERT INTO "+table+" (name) VALUES (?)", name)
	if err != nil {
		// UNIQUE 충돌이면 다른 작업자가 먼저 만든 것: 조회로 재시도
		if lookupErr := tx.QueryRow("SELECT id FROM "+table+" WHERE name = ?", name).Scan(&id); lookupErr == nil {
			return id, nil
		}
		return 0, fmt.Errorf("failed to insert %s: %w", table, err)
	}
	return res.LastInsertId()
}
