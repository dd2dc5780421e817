package store

import (
	"fmt"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

// SaveRiskDocument 위험성평가 문서 적재. 문서 행을 먼저 만들고 같은
// 트랜잭션에서 항목/확인 행을 문서 id 에 귀속시킨다.
// 반환값은 항목 + 확인 레코드 수.
func (s *Store) SaveRiskDocument(doc *model.RiskDocument) (int, error) {
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
		INSERT INTO risk_docs (
			site_id, partner_id, start_date, end_date,
			doc_index, risk_type, action_result_count, filename
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		siteID,
		partnerID,
		nullDate(doc.Meta.StartDate),
		nullDate(doc.Meta.EndDate),
		doc.Meta.DocIndex,
		doc.RiskType,
		doc.ActionResultCount,
		doc.Filename,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert risk doc: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get risk doc id: %w", err)
	}

	count := 0
	for _, item := range doc.Items {
		// 양식 변형에 따라 measure 와 action_result 중 하나만 채워진다.
		// nullable 로 뭉개지 않고 변형 태그로 어느 쪽인지 구분한다.
		var measure, actionResult any
		switch item.Variant {
		case model.VariantMeasure:
			measure = item.Measure
		case model.VariantActionResult:
			actionResult = nullString(item.ActionResult)
		}
		_, err := tx.Exec(`
			INSERT INTO risk_items (doc_id, risk_factor, measure, action_result)
			VALUES (?, ?, ?, ?)
		`, docID, nullString(item.RiskFactor), measure, actionResult)
		if err != nil {
			return 0, fmt.Errorf("failed to insert risk item: %w", err)
		}
		count++
	}

	for _, confirm := range doc.Confirmations {
		_, err := tx.Exec(`
			INSERT INTO risk_confirmations (doc_id, worker_name, position)
			VALUES (?, ?, ?)
		`, docID, confirm.WorkerName, nullString(confirm.Position))
		if err != nil {
			return 0, fmt.Errorf("failed to insert risk confirmation: %w", err)
		}
		count++
	}

	if err := markProcessed(tx, doc.Filename, model.KindRisk); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return count, nil
}
