package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

const (
	attendancePrefix = "출퇴근무사고_"
	riskPrefix       = "위험성평가_"
)

var (
	tbmPrefixRe  = regexp.MustCompile(`(?i)^tbm_`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeText 공백 정규화: 연속 공백을 하나로 줄이고 양끝을 잘라낸다.
func NormalizeText(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseAttendanceFilename 출퇴근 파일명 메타데이터 추출.
// 패턴: 출퇴근무사고_(현장명)_(협력사)_YYMMDD
// 형식이 깨진 파일명은 빈 필드로 반환하고 에러를 내지 않는다.
func ParseAttendanceFilename(stem string) model.AttendanceMeta {
	return parseDailyFilename(strings.Replace(stem, attendancePrefix, "", 1))
}

// ParseTbmFilename TBM 파일명 메타데이터 추출.
// 패턴: tbm_(현장명)_(협력사)_YYMMDD (접두어는 대소문자 무시)
func ParseTbmFilename(stem string) model.TbmMeta {
	m := parseDailyFilename(tbmPrefixRe.ReplaceAllString(stem, ""))
	return model.TbmMeta{WorkDate: m.WorkDate, SiteName: m.SiteName, PartnerName: m.PartnerName}
}

func parseDailyFilename(name string) model.AttendanceMeta {
	parts := strings.Split(name, "_")

	var meta model.AttendanceMeta
	if len(parts) == 0 {
		return meta
	}

	// 마지막 토큰이 날짜, 그 앞이 협력사, 첫 토큰이 현장명
	// (현장명에 포함된 회사 접두어는 그대로 둔다)
	if d, ok := ParseYYMMDD(parts[len(parts)-1]); ok {
		meta.WorkDate = d
	}
	if len(parts) >= 2 {
		meta.PartnerName = NormalizeText(parts[len(parts)-2])
	}
	meta.SiteName = NormalizeText(parts[0])
	return meta
}

// ParseRiskFilename 위험성평가 파일명 메타데이터 추출.
// 패턴: 위험성평가_(현장명)_(협력사)_YYMMDD_YYMMDD_N
// 뒤에서부터 문서번호, 종료일, 시작일, 협력사 순으로 읽는다.
func ParseRiskFilename(stem string) model.RiskMeta {
	name := strings.Replace(stem, riskPrefix, "", 1)
	parts := strings.Split(name, "_")

	var meta model.RiskMeta
	if len(parts) < 4 {
		return meta
	}

	if idx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
		meta.DocIndex = idx
	}
	if d, ok := ParseYYMMDD(parts[len(parts)-2]); ok {
		meta.EndDate = d
	}
	if d, ok := ParseYYMMDD(parts[len(parts)-3]); ok {
		meta.StartDate = d
	}
	meta.PartnerName = NormalizeText(parts[len(parts)-4])
	meta.SiteName = NormalizeText(parts[0])
	return meta
}
