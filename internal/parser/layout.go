package parser

import (
	"strings"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

// 레이아웃 탐색.
//
// 같은 양식이라도 파일 연차에 따라 행/열 위치가 밀리기 때문에 고정 좌표 대신
// 제한된 창 안에서 마커 문자열을 찾아 경계를 정한다. 마커를 끝내 못 찾으면
// 문서 종류별 고정 폴백 위치로 내려간다. 비정상 구조 파일에서도 크래시보다
// 낮은 정밀도의 결과를 택한다.

// 위험성평가 항목 섹션 폴백 위치
const (
	riskFallbackDataStart  = 7
	riskFallbackFactorCol  = 8
	riskFallbackMeasureCol = 25
)

// 항목 섹션 종료 마커: 이 중 하나가 나오는 행 직전까지가 데이터다.
var riskSectionEndMarkers = []string{"추가", "조치", "위험성평가", "아차사고"}

// RiskLayout 위험성평가 시트의 레이아웃 탐색 결과. 탐색은 시트당 한 번이고
// 결과는 이후 추출 단계에서 읽기 전용으로 쓴다.
type RiskLayout struct {
	DataStart int
	DataEnd   int
	FactorCol int
	ValueCol  int // 개선대책 또는 조치결과 열
	Variant   model.ItemVariant
}

// normalizeMarker 마커 비교용 정규화: 모든 공백/개행 제거.
// "번 호" 처럼 글자 사이에 공백이 끼어 있는 머리글도 잡아야 한다.
func normalizeMarker(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.ReplaceAll(s, " ", "")
}

// containsAny 문자열이 마커 중 하나라도 포함하는지
func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// ProbeRiskLayout 위험성평가 시트의 항목 섹션 경계와 열 위치를 찾는다.
func ProbeRiskLayout(sh *Sheet) RiskLayout {
	layout := RiskLayout{
		DataStart: riskFallbackDataStart,
		DataEnd:   sh.LastRow(),
		FactorCol: riskFallbackFactorCol,
		ValueCol:  riskFallbackMeasureCol,
		Variant:   model.VariantMeasure,
	}

	// 머리글 행: 1~14행 × 1~4열에서 NO/번호 마커
	if row, ok := findHeaderRow(sh); ok {
		layout.DataStart = row + 1
	}

	// 데이터 종료: 종료 마커가 나오는 행 직전, 없으면 마지막 행
	layout.DataEnd = findSectionEnd(sh, layout.DataStart)

	// 위험요인 열: 1~9행 × 1~19열에서 라벨 탐색
	if col, ok := findLabelColumn(sh, 9, 19, []string{"위험요인", "위험 요인"}); ok {
		layout.FactorCol = col
	}

	// 값 열: 개선대책 라벨이 있으면 구양식, 없으면 조치결과 열의 신양식
	if col, ok := findLabelColumn(sh, 9, 49, []string{"개선대책", "개선 대책"}); ok {
		layout.ValueCol = col
		layout.Variant = model.VariantMeasure
		return layout
	}
	layout.Variant = model.VariantActionResult
	if col, ok := findLabelColumn(sh, 9, 49, []string{"조치결과", "조치 결과"}); ok {
		layout.ValueCol = col
	}
	return layout
}

func findHeaderRow(sh *Sheet) (int, bool) {
	maxRow := min(14, sh.LastRow())
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= 4; col++ {
			text := strings.ToUpper(normalizeMarker(sh.Cell(row, col)))
			if text == "NO" || text == "NO." || text == "번호" {
				return row, true
			}
		}
	}
	return 0, false
}

func findSectionEnd(sh *Sheet, startRow int) int {
	for row := startRow; row <= sh.LastRow(); row++ {
		for col := 1; col <= 9; col++ {
			text := normalizeMarker(sh.Cell(row, col))
			if text != "" && containsAny(text, riskSectionEndMarkers) {
				return row - 1
			}
		}
	}
	return sh.LastRow()
}

func findLabelColumn(sh *Sheet, maxRow, maxCol int, labels []string) (int, bool) {
	if last := sh.LastRow(); last < maxRow {
		maxRow = last
	}
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= maxCol; col++ {
			text := strings.TrimSpace(sh.Cell(row, col))
			if text != "" && containsAny(text, labels) {
				return col, true
			}
		}
	}
	return 0, false
}

// FindMarkerRow 지정한 열 범위에서 마커를 포함한 첫 행을 찾는다.
func FindMarkerRow(sh *Sheet, fromRow, toRow, maxCol int, markers []string) (int, bool) {
	if last := sh.LastRow(); toRow > last {
		toRow = last
	}
	for row := fromRow; row <= toRow; row++ {
		for col := 1; col <= maxCol; col++ {
			text := normalizeMarker(sh.Cell(row, col))
			if text != "" && containsAny(text, markers) {
				return row, true
			}
		}
	}
	return 0, false
}

// isOrdinal 선행 번호 셀 검사: 10진 정수 문자열일 때만 유효한 데이터 행이다.
// 소계 행, 빈 행, 반복된 머리글 행은 여기서 걸러진다.
func isOrdinal(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
