package store

import (
	"fmt"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

// SaveTbm TBM 활동일지 적재. 일지 행과 참석자 행이 한 트랜잭션이다.
// 반환값은 참석자 수.
func (s *Store) SaveTbm(doc *model.TbmDocument) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	siteID, err := getOrCreateSite(tx, doc.Meta.SiteName)
	if err != nil {
		return 0, err
	}
	partnerID, err := getOrCreatePartner(tx, doc.Meta.PartnerName)
	if err != nil {
		return 0, err
	}

	res, err := tx.Exec(`
		INSERT INTO tbm_logs (work_date, site_id, partner_id, content)
		VALUES (?, ?, ?, ?)
	`, nullDate(doc.Meta.WorkDate), siteID, partnerID, nullString(doc.Content))
	if err != nil {
		return 0, fmt.Errorf("failed to insert tbm log: %w", err)
	}
	tbmID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get tbm id: %w", err)
	}

	count := 0
	for _, name := range doc.Participants {
		if name == "" {
			continue
		}
		_, err := tx.Exec(`
			INSERT INTO tbm_participants (tbm_id, worker_name) VALUES (?, ?)
		`, tbmID, name)
		if err != nil {
			return 0, fmt.Errorf("failed to insert tbm participant: %w", err)
		}
		count++
	}

	if err := markProcessed(tx, doc.Filename, model.KindTBM); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return count, nil
}
