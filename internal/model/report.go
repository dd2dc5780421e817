package model

import "time"

// KindStats 문서 종류별 수집 통계
type KindStats struct {
	Files   int `json:"files"`   // 이번 실행에서 처리한 파일 수
	Records int `json:"records"` // 적재한 레코드 수
	Skipped int `json:"skipped"` // 원장에 있어 건너뛴 파일 수
	Failed  int `json:"failed"`  // 파싱/적재 실패 파일 수
}

// IngestReport 수집 실행 한 번의 결과
type IngestReport struct {
	RunID     string                      `json:"runId"`
	Reset     bool                        `json:"reset"`
	StartedAt time.Time                   `json:"startedAt"`
	Duration  time.Duration               `json:"duration"`
	Kinds     map[DocumentKind]*KindStats `json:"kinds"`
}

// NewIngestReport 빈 보고서 생성
func NewIngestReport(runID string, reset bool) *IngestReport {
	return &IngestReport{
		RunID:     runID,
		Reset:     reset,
		StartedAt: time.Now(),
		Kinds: map[DocumentKind]*KindStats{
			KindAttendance: {},
			KindRisk:       {},
			KindTBM:        {},
		},
	}
}

// TotalFailed 전체 실패 파일 수
func (r *IngestReport) TotalFailed() int {
	total := 0
	for _, s := range r.Kinds {
		total += s.Failed
	}
	return total
}
