package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

const (
	tbmSheetHint      = "TBM" // "TBM 활동일지" 등에 걸린다
	tbmContentCol     = 6     // 작업내용 라벨 행의 내용 열 (통상 양식)
	tbmFallbackHeader = 13
	tbmHeaderScanRows = 19
	tbmHeaderScanCols = 49
	tbmMetaScanRows   = 11
	tbmMetaScanCols   = 9
)

// 참석자 명단 폴백 이름 열 (명시적 머리글이 없는 구양식)
var tbmFallbackNameCols = []int{11, 35}

// 이름 셀에 이 토큰이 들어 있으면 머리글/집계 행이다
var tbmHeaderTokens = []string{"이름", "성명", "참석", "합계", "총", "직종"}

// TbmParser TBM 활동일지 파서
type TbmParser struct {
	path string
}

// NewTbmParser TBM 파서 생성
func NewTbmParser(path string) *TbmParser {
	return &TbmParser{path: path}
}

// Parse TBM 파일 하나를 파싱한다.
func (p *TbmParser) Parse() (*model.TbmDocument, error) {
	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sh, err := LoadSheet(f, tbmSheetHint)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(p.path), filepath.Ext(p.path))

	doc := &model.TbmDocument{
		Filename: filepath.Base(p.path),
		Meta:     ParseTbmFilename(stem),
		Content:  p.extractContent(sh),
	}
	doc.Participants = p.extractParticipants(sh)
	return doc, nil
}

// extractContent 작업내용 추출. "작업내용" 라벨 행의 고정 오프셋 셀을 읽고,
// 없으면 "위험요인" 라벨 바로 아래 행으로 폴백한다.
func (p *TbmParser) extractContent(sh *Sheet) string {
	maxRow := min(tbmMetaScanRows, sh.LastRow())
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= tbmMetaScanCols; col++ {
			if !strings.Contains(sh.Cell(row, col), "작업내용") {
				continue
			}
			if content := strings.TrimSpace(sh.Cell(row, tbmContentCol)); content != "" {
				return content
			}
		}
	}

	for row := 1; row <= maxRow; row++ {
		if strings.Contains(sh.Cell(row, 1), "위험요인") {
			return strings.TrimSpace(sh.Cell(row+1, 1))
		}
	}
	return ""
}

// findParticipantHeader 참석자 명단의 머리글 행과 이름 열 집합을 찾는다.
// "이름"/"성명" 열이 여러 개면 전부 이름 열이다 (좌우 2단 명단 양식).
// 명시적 머리글이 없으면 "참석자" 마커 기준으로, 그마저 없으면 고정 위치로
// 폴백한다.
func (p *TbmParser) findParticipantHeader(sh *Sheet) (int, []int) {
	headerRow := 0
	var nameCols []int

	maxRow := min(tbmHeaderScanRows, sh.LastRow())
	for row := 1; row <= maxRow; row++ {
		for col := 1; col <= tbmHeaderScanCols; col++ {
			text := strings.TrimSpace(sh.Cell(row, col))
			if text != "이름" && text != "성명" {
				continue
			}
			if headerRow == 0 {
				headerRow = row
			}
			if row == headerRow {
				nameCols = append(nameCols, col)
			}
		}
	}
	if headerRow != 0 && len(nameCols) > 0 {
		return headerRow, nameCols
	}

	if row, ok := FindMarkerRow(sh, 1, maxRow, 1, []string{"참석자"}); ok {
		return row + 1, tbmFallbackNameCols
	}
	return tbmFallbackHeader, tbmFallbackNameCols
}

func (p *TbmParser) extractParticipants(sh *Sheet) []string {
	headerRow, nameCols := p.findParticipantHeader(sh)

	var participants []string
	for row := headerRow + 1; row <= sh.LastRow(); row++ {
		for _, col := range nameCols {
			name := NormalizeText(sh.Cell(row, col))
			if !isLikelyName(name) {
				continue
			}
			participants = append(participants, name)
		}
	}
	return participants
}

// isLikelyName 이름 후보 검사: 머리글 토큰, 순수 숫자, 한 글자짜리는
// 이름이 아니다.
func isLikelyName(name string) bool {
	if name == "" || containsAny(name, tbmHeaderTokens) {
		return false
	}
	if isOrdinal(strings.ReplaceAll(name, " ", "")) {
		return false
	}
	return utf8.RuneCountInString(name) >= 2
}
