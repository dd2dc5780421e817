package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet 시트 한 장의 셀 그리드. 행/열 모두 1부터 센다.
// 파서와 레이아웃 탐색은 전부 이 그리드 위에서 동작하므로
// 테스트에서는 엑셀 파일 없이 그리드만으로 검증할 수 있다.
type Sheet struct {
	Name string
	rows [][]string
}

// NewSheet 그리드로 시트 생성 (테스트 픽스처용)
func NewSheet(name string, rows [][]string) *Sheet {
	return &Sheet{Name: name, rows: rows}
}

// LoadSheet 대상 시트를 골라 그리드로 읽는다.
// 시트 선택: 정확히 일치 → 부분 일치 → 첫 번째 시트.
func LoadSheet(f *excelize.File, preferred string) (*Sheet, error) {
	name := selectSheet(f.GetSheetList(), preferred)
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	return &Sheet{Name: name, rows: rows}, nil
}

func selectSheet(names []string, preferred string) string {
	if len(names) == 0 {
		return ""
	}
	if preferred != "" {
		for _, n := range names {
			if n == preferred {
				return n
			}
		}
		for _, n := range names {
			if strings.Contains(n, preferred) {
				return n
			}
		}
	}
	return names[0]
}

// Cell 셀 값 (1-indexed). 범위를 벗어나면 빈 문자열.
func (s *Sheet) Cell(row, col int) string {
	if row < 1 || row > len(s.rows) {
		return ""
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// LastRow 마지막 행 번호
func (s *Sheet) LastRow() int {
	return len(s.rows)
}
