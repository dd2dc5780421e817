package parser

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestTbmParser_StandardForm(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "TBM_현장A_협력사B_250227.xlsx")
	writeWorkbook(t, path, "TBM 활동일지", map[string]string{
		"A3": "작업내용",
		"F3": "지하 2층 배관 용접 작업",
		// 좌우 2단 명단: 이름 열이 두 개
		"C8":  "이름",
		"M8":  "이름",
		"C9":  "홍길동",
		"M9":  "김영희",
		"C10": "이철수",
		"M10": "3",  // 순수 숫자는 이름이 아니다
		"C11": "김", // 한 글자도 이름이 아니다
	})

	doc, err := NewTbmParser(path).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc.Meta.WorkDate.Format("2006-01-02") != "2025-02-27" {
		t.Fatalf("unexpected work date: %v", doc.Meta.WorkDate)
	}
	if doc.Meta.SiteName != "현장A" || doc.Meta.PartnerName != "협력사B" {
		t.Fatalf("unexpected meta: %+v", doc.Meta)
	}
	if doc.Content != "지하 2층 배관 용접 작업" {
		t.Fatalf("unexpected content: %q", doc.Content)
	}

	want := []string{"홍길동", "김영희", "이철수"}
	if !reflect.DeepEqual(doc.Participants, want) {
		t.Fatalf("participants = %v, want %v", doc.Participants, want)
	}
}

func TestTbmParser_FallbackSections(t *testing.T) {
	t.Parallel()

	// 구양식: 작업내용 라벨이 없고 위험요인 아래 행이 내용이다.
	// 명단도 열 머리글 없이 "참석자" 마커 아래에 고정 열로 적는다.
	path := filepath.Join(t.TempDir(), "tbm_현장A_협력사B_250301.xlsx")
	writeWorkbook(t, path, "TBM 활동일지", map[string]string{
		"A5":   "위험요인",
		"A6":   "밀폐공간 질식",
		"A9":   "참석자 명단",
		"K11":  "박민수",
		"AI11": "최지훈",
	})

	doc, err := NewTbmParser(path).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc.Content != "밀폐공간 질식" {
		t.Fatalf("unexpected content: %q", doc.Content)
	}
	want := []string{"박민수", "최지훈"}
	if !reflect.DeepEqual(doc.Participants, want) {
		t.Fatalf("participants = %v, want %v", doc.Participants, want)
	}
}

func TestTbmParser_FixedPositionFallback(t *testing.T) {
	t.Parallel()

	// 마커가 하나도 없는 시트: 명단은 고정 머리글 행 아래 고정 열에서 읽는다
	path := filepath.Join(t.TempDir(), "TBM_현장A_협력사B_250302.xlsx")
	writeWorkbook(t, path, "TBM 활동일지", map[string]string{
		"K14":  "이영호",
		"AI15": "정수진",
	})

	doc, err := NewTbmParser(path).Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Content != "" {
		t.Fatalf("unexpected content: %q", doc.Content)
	}
	want := []string{"이영호", "정수진"}
	if !reflect.DeepEqual(doc.Participants, want) {
		t.Fatalf("participants = %v, want %v", doc.Participants, want)
	}
}
