package parser

import (
	"testing"
	"time"
)

func TestParseYYMMDD_AlwaysTwoThousands(t *testing.T) {
	t.Parallel()

	d, ok := ParseYYMMDD("250227")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if d.Format("2006-01-02") != "2025-02-27" {
		t.Fatalf("unexpected date: %s", d.Format("2006-01-02"))
	}

	// 파일명 날짜는 항상 2000년대 피벗: 690718 은 2069년이다
	d, ok = ParseYYMMDD("690718")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if d.Format("2006-01-02") != "2069-07-18" {
		t.Fatalf("unexpected date: %s", d.Format("2006-01-02"))
	}

	if _, ok := ParseYYMMDD("25022"); ok {
		t.Fatalf("5 digits must not parse")
	}
	if _, ok := ParseYYMMDD("2502AB"); ok {
		t.Fatalf("non-numeric must not parse")
	}
	if _, ok := ParseYYMMDD("251332"); ok {
		t.Fatalf("month 13 must not parse")
	}
}

func TestParseBirthDate_CenturyPivotDiffersFromFilename(t *testing.T) {
	t.Parallel()

	// 생년월일 피벗: YY ≤ 30 → 2000년대, YY > 30 → 1900년대.
	// 같은 69 라도 파일명 날짜(2069)와 생년월일(1969)은 다르게 읽혀야 한다.
	d, ok := ParseBirthDate("69.07.18")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if d.Format("2006-01-02") != "1969-07-18" {
		t.Fatalf("unexpected birth date: %s", d.Format("2006-01-02"))
	}

	d, ok = ParseBirthDate("05.12.01")
	if !ok {
		t.Fatalf("expected parse ok")
	}
	if d.Format("2006-01-02") != "2005-12-01" {
		t.Fatalf("unexpected birth date: %s", d.Format("2006-01-02"))
	}

	d, ok = ParseBirthDate("30.01.01")
	if !ok || d.Year() != 2030 {
		t.Fatalf("YY=30 must pivot to 2030, got %v ok=%v", d, ok)
	}
	d, ok = ParseBirthDate("31.01.01")
	if !ok || d.Year() != 1931 {
		t.Fatalf("YY=31 must pivot to 1931, got %v ok=%v", d, ok)
	}
}

func TestParseBirthDate_ExcelSerial(t *testing.T) {
	t.Parallel()

	// 기준일 1899-12-30: 시리얼 25000 = 1968-06-13
	d, ok := ParseBirthDate("25000")
	if !ok {
		t.Fatalf("expected serial parse ok")
	}
	want := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 25000)
	if !d.Equal(want) {
		t.Fatalf("serial 25000: want %s got %s", want.Format("2006-01-02"), d.Format("2006-01-02"))
	}

	// 1 = 1899-12-31 (1900년 윤년 버그 무보정)
	d, ok = ParseBirthDate("1")
	if !ok || d.Format("2006-01-02") != "1899-12-31" {
		t.Fatalf("serial 1: got %v ok=%v", d, ok)
	}
}

func TestParseDate_Formats(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2025-02-27": "2025-02-27",
		"2025.02.27": "2025-02-27",
		"250227":     "2025-02-27",
	}
	for in, want := range cases {
		d, ok := ParseDate(in)
		if !ok {
			t.Fatalf("%q: expected parse ok", in)
		}
		if got := d.Format("2006-01-02"); got != want {
			t.Fatalf("%q: want %s got %s", in, want, got)
		}
	}

	if _, ok := ParseDate(""); ok {
		t.Fatalf("empty string must not parse")
	}
	if _, ok := ParseDate("미정"); ok {
		t.Fatalf("free text must not parse")
	}
}

func TestParseClock_DashMeansAbsent(t *testing.T) {
	t.Parallel()

	if got, ok := ParseClock("08:00:00"); !ok || got != "08:00:00" {
		t.Fatalf("unexpected: %q ok=%v", got, ok)
	}
	if got, ok := ParseClock("7:30"); !ok || got != "07:30:00" {
		t.Fatalf("unexpected: %q ok=%v", got, ok)
	}

	// 대시와 빈 값은 자정이 아니라 미기록이다
	if _, ok := ParseClock("-"); ok {
		t.Fatalf("dash must mean absent")
	}
	if _, ok := ParseClock(""); ok {
		t.Fatalf("empty must mean absent")
	}
	if _, ok := ParseClock("25:00"); ok {
		t.Fatalf("hour 25 must not parse")
	}
}

func TestAge_ExactCalendarArithmetic(t *testing.T) {
	t.Parallel()

	ref := time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC)

	// 생일이 하루 뒤: 아직 64세
	birth := time.Date(1960, 2, 28, 0, 0, 0, 0, time.UTC)
	if age := Age(birth, ref); age != 64 {
		t.Fatalf("want 64 got %d", age)
	}
	if IsSenior(birth, ref, 65) {
		t.Fatalf("64 must not be senior")
	}

	// 생일 당일: 65세
	birth = time.Date(1960, 2, 27, 0, 0, 0, 0, time.UTC)
	if age := Age(birth, ref); age != 65 {
		t.Fatalf("want 65 got %d", age)
	}
	if !IsSenior(birth, ref, 65) {
		t.Fatalf("65 must be senior")
	}
}
