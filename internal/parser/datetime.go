package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Excel 날짜 시리얼의 기준일. day 0 = 1899-12-30.
// 1900년 윤년 버그는 보정하지 않는다. 기존 적재 데이터와의 호환을 위해
// 기준일을 바꾸는 것은 데이터 마이그레이션이 필요한 파괴적 변경으로 취급한다.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var birthDateRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{2})$`)

// ParseYYMMDD YYMMDD 6자리 날짜 파싱. 연도는 항상 2000+YY.
func ParseYYMMDD(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return time.Time{}, false
	}
	yy, err1 := strconv.Atoi(s[:2])
	mm, err2 := strconv.Atoi(s[2:4])
	dd, err3 := strconv.Atoi(s[4:6])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	return makeDate(2000+yy, mm, dd)
}

// ParseDate 여러 형식의 날짜 문자열 파싱 (YYYY-MM-DD, YYYY.MM.DD, YYMMDD 순).
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006.01.02", s, time.UTC); err == nil {
		return t, true
	}
	return ParseYYMMDD(s)
}

// ParseBirthDate 생년월일 파싱.
//
// YY.MM.DD 형식은 출생연도 세기 피벗이 다르다: YY ≤ 30 → 2000년대,
// YY > 30 → 1900년대. 파일명 날짜(ParseYYMMDD, 항상 2000년대)와
// 규칙이 다르므로 통합하면 안 된다.
// 그 외에는 일반 날짜 형식을 시도하고, 마지막으로 Excel 시리얼 값으로 해석한다.
func ParseBirthDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := birthDateRe.FindStringSubmatch(s); m != nil {
		yy, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		dd, _ := strconv.Atoi(m[3])
		year := 1900 + yy
		if yy <= 30 {
			year = 2000 + yy
		}
		return makeDate(year, mm, dd)
	}

	if t, ok := ParseDate(s); ok {
		return t, true
	}

	// 서식이 풀린 셀은 시리얼 숫자 문자열로 읽힌다
	if serial, err := strconv.Atoi(s); err == nil && serial > 0 && serial < 200000 {
		return excelEpoch.AddDate(0, 0, serial), true
	}

	return time.Time{}, false
}

// ParseClock 시각 문자열 파싱, HH:MM:SS 정규형으로 반환.
// "-" 또는 빈 문자열은 자정이 아니라 미기록을 뜻한다.
func ParseClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return "", false
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return "", false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || h < 0 || h > 23 {
		return "", false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || m < 0 || m > 59 {
		return "", false
	}
	sec := 0
	if len(parts) == 3 {
		sec, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || sec < 0 || sec > 59 {
			return "", false
		}
	}
	return time.Date(0, 1, 1, h, m, sec, 0, time.UTC).Format("15:04:05"), true
}

// Age 기준일 시점의 만 나이. 생일이 지나지 않았으면 1을 뺀다.
func Age(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}

// IsSenior 고령자 여부 (기본 기준 만 65세 이상)
func IsSenior(birth, ref time.Time, threshold int) bool {
	return Age(birth, ref) >= threshold
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date 는 2월 30일 같은 값을 다음 달로 넘겨버리므로 되짚어 검증
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
