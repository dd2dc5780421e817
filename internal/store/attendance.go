package store

import (
	"fmt"
	"time"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

// SaveAttendance 출퇴근 파일 하나의 레코드 일괄 적재.
// 기준 정보 해소, 데이터 적재, 원장 기록이 한 트랜잭션이다. 부모 없는 자식
// 행이 커밋되면 하류 집계가 이중/과소 계산되므로 부분 커밋은 없다.
func (s *Store) SaveAttendance(doc *model.AttendanceDocument) (int, error) {
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

	count := 0
	for _, e := range doc.Entries {
		_, err := tx.Exec(`
			INSERT INTO attendance_logs (
				work_date, site_id, partner_id, worker_name, role,
				birth_date, age, is_senior, check_in_time, check_out_time, has_accident
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			nullDate(doc.Meta.WorkDate),
			siteID,
			partnerID,
			e.WorkerName,
			e.Role,
			nullDatePtr(e.BirthDate),
			e.Age,
			boolToInt(e.IsSenior),
			nullString(e.CheckIn),
			nullString(e.CheckOut),
			boolToInt(e.HasAccident),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert attendance row: %w", err)
		}
		count++
	}

	if err := markProcessed(tx, doc.Filename, model.KindAttendance); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return count, nil
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format("2006-01-02")
}

func nullDatePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
