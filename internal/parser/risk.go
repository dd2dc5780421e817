package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

const riskSheetHint = "위험성" // 최초/수시/정기 시트명 모두에 걸린다

// 항목 행에 이 텍스트가 섞여 있으면 데이터가 아니라 섹션 잔재다
var riskInvalidMarkers = []string{"아차사고", "추가위험", "조치결과", "이행확인", "위험성평가"}

// 근로자 확인 섹션의 머리글 토큰
var confirmationHeaderTokens = []string{"직종", "이름", "서명"}

// 근로자 확인 행의 열 구조: 12열 주기로 반복, 직종은 주기의 첫 열,
// 이름은 직종 열 + 4. (직종 C1, 이름 C5, 서명 C9, 다음 근로자 C13...)
const (
	confirmationStride  = 12
	confirmationNameOff = 4
	confirmationMaxCol  = 60
)

// RiskParser 위험성평가표 파서
type RiskParser struct {
	path string
}

// NewRiskParser 위험성평가 파서 생성
func NewRiskParser(path string) *RiskParser {
	return &RiskParser{path: path}
}

// Parse 위험성평가 파일 하나를 파싱한다.
// 평가 유형(최초/수시/정기)은 파일명이 아니라 시트 제목에서 읽는다.
// 유형에 따라 근로자 확인 섹션(수시)과 조치결과 섹션(수시/정기)이 추가된다.
func (p *RiskParser) Parse() (*model.RiskDocument, error) {
	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sh, err := LoadSheet(f, riskSheetHint)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(p.path), filepath.Ext(p.path))

	doc := &model.RiskDocument{
		Filename: filepath.Base(p.path),
		Meta:     ParseRiskFilename(stem),
		RiskType: riskTypeFromSheetName(sh.Name),
	}

	layout := ProbeRiskLayout(sh)
	doc.Items = p.extractItems(sh, layout)

	if doc.RiskType == model.RiskTypeAdHoc {
		doc.Confirmations = p.extractConfirmations(sh)
	}
	if doc.RiskType != model.RiskTypeInitial {
		doc.ActionResultCount = p.countActionResults(sh)
	}
	return doc, nil
}

func riskTypeFromSheetName(name string) string {
	if strings.Contains(name, model.RiskTypeAdHoc) {
		return model.RiskTypeAdHoc
	}
	if strings.Contains(name, model.RiskTypePeriodic) {
		return model.RiskTypePeriodic
	}
	return model.RiskTypeInitial
}

// extractItems 항목 섹션 추출. 행 유효성 기준은 양식 변형마다 다르다:
// 구양식(개선대책)은 위험요인과 개선대책이 모두 있어야 하고,
// 신양식(조치결과)은 둘 중 하나만 있어도 레코드로 본다. 의도된 정책 차이로,
// 통합하지 않는다.
func (p *RiskParser) extractItems(sh *Sheet, layout RiskLayout) []model.RiskItem {
	var items []model.RiskItem

	for row := layout.DataStart; row <= layout.DataEnd; row++ {
		factor := NormalizeText(sh.Cell(row, layout.FactorCol))
		value := NormalizeText(sh.Cell(row, layout.ValueCol))

		// 섹션 잔재 행 건너뛰기 (NO 열 유무와 무관하게 대분류 아래
		// 서브 행도 데이터로 받기 때문에 내용으로 거른다)
		if containsAny(normalizeMarker(factor), riskInvalidMarkers) ||
			containsAny(normalizeMarker(value), riskInvalidMarkers) {
			continue
		}

		switch layout.Variant {
		case model.VariantMeasure:
			if factor != "" && value != "" {
				items = append(items, model.RiskItem{
					Variant:    model.VariantMeasure,
					RiskFactor: factor,
					Measure:    value,
				})
			}
		case model.VariantActionResult:
			if factor != "" || value != "" {
				items = append(items, model.RiskItem{
					Variant:      model.VariantActionResult,
					RiskFactor:   factor,
					ActionResult: value,
				})
			}
		}
	}
	return items
}

// extractConfirmations 근로자 확인 섹션 추출 (수시 전용).
// "위험성평가 ... 확인" 머리글을 찾고 그 두 행 아래부터 12열 주기로 읽는다.
func (p *RiskParser) extractConfirmations(sh *Sheet) []model.RiskConfirmation {
	sectionRow := 0
	for row := 1; row <= sh.LastRow(); row++ {
		val := sh.Cell(row, 1)
		if strings.Contains(val, "위험성평가") && strings.Contains(val, "확인") {
			sectionRow = row
			break
		}
	}
	if sectionRow == 0 {
		return nil
	}

	// 섹션 머리글 다음 행은 열 머리글(직종/이름/서명)이므로 건너뛴다
	dataStart := sectionRow + 2

	var confirms []model.RiskConfirmation
	for row := dataStart; row <= sh.LastRow(); row++ {
		for base := 1; base <= confirmationMaxCol; base += confirmationStride {
			name := NormalizeText(sh.Cell(row, base+confirmationNameOff))
			if name == "" || containsAny(name, confirmationHeaderTokens) {
				continue
			}
			confirms = append(confirms, model.RiskConfirmation{
				WorkerName: name,
				Position:   NormalizeText(sh.Cell(row, base)),
			})
		}
	}
	return confirms
}

// countActionResults 조치결과 섹션의 이행 건수 (수시/정기 전용).
// 섹션은 시트 하단에 있고 위치가 데이터 길이에 따라 밀리므로
// "조치결과"+"이행"이 든 1열 셀을 마커로 찾는다. 이어서 "N번 조치결과"
// 라벨 행을 찾고, 그 아래 행들에서 "등록일"이 든 셀을 실제 이행 건으로 센다.
func (p *RiskParser) countActionResults(sh *Sheet) int {
	sectionRow := 0
	for row := 1; row <= sh.LastRow(); row++ {
		text := normalizeMarker(sh.Cell(row, 1))
		if strings.Contains(text, "조치결과") && strings.Contains(text, "이행") {
			sectionRow = row
			break
		}
	}
	if sectionRow == 0 {
		return 0
	}

	labelScanEnd := min(sectionRow+9, sh.LastRow())
	for row := sectionRow; row <= labelScanEnd; row++ {
		for col := 1; col <= 49; col++ {
			val := sh.Cell(row, col)
			if !strings.Contains(val, "조치결과") || !strings.Contains(val, "번") {
				continue
			}
			// 라벨 셀을 찾았다. 아래 행들에서 등록일 항목을 센다.
			count := 0
			dataScanEnd := min(row+9, sh.LastRow())
			for dataRow := row + 1; dataRow <= dataScanEnd; dataRow++ {
				for dataCol := 1; dataCol <= 49; dataCol++ {
					if strings.Contains(sh.Cell(dataRow, dataCol), "등록일") {
						count++
					}
				}
			}
			return count
		}
	}
	return 0
}
