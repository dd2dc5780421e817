package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook 테스트용 통합문서 생성. cells 는 "B15" 형태의 셀 참조.
func writeWorkbook(t *testing.T, path, sheetName string, cells map[string]string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for ref, val := range cells {
		if err := f.SetCellValue(sheetName, ref, val); err != nil {
			t.Fatalf("set cell %s: %v", ref, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}
