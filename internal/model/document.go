package model

import "time"

// DocumentKind 원본 문서 종류
type DocumentKind string

const (
	KindAttendance DocumentKind = "attendance"
	KindRisk       DocumentKind = "risk"
	KindTBM        DocumentKind = "tbm"
)

// 근로자 구분
const (
	RoleManager = "관리자"
	RoleWorker  = "근로자"
)

// 위험성평가 유형 (시트 제목에서 판별)
const (
	RiskTypeInitial  = "최초"
	RiskTypeAdHoc    = "수시"
	RiskTypePeriodic = "정기"
)

// AttendanceMeta 출퇴근 파일명 메타데이터
type AttendanceMeta struct {
	WorkDate    time.Time // zero = 파일명에서 날짜를 못 읽음
	SiteName    string
	PartnerName string
}

// AttendanceEntry 출퇴근 기록 한 건
type AttendanceEntry struct {
	WorkerName  string
	Role        string // 관리자/근로자
	BirthDate   *time.Time
	Age         *int
	IsSenior    bool
	CheckIn     string // HH:MM:SS, 빈 값 = 미기록
	CheckOut    string
	HasAccident bool
}

// AttendanceDocument 출퇴근 파일 하나의 파싱 결과
type AttendanceDocument struct {
	Filename string
	Meta     AttendanceMeta
	Entries  []AttendanceEntry
}

// RiskMeta 위험성평가 파일명 메타데이터
type RiskMeta struct {
	StartDate   time.Time
	EndDate     time.Time
	DocIndex    int
	SiteName    string
	PartnerName string
}

// ItemVariant 위험성평가 항목 스키마 변형
//
// 구버전 양식은 위험요인+개선대책, 신버전 양식은 위험요인+조치결과를 쓴다.
// 같은 행 구조에 nullable 필드로 합치지 않고 변형을 명시적으로 태깅한다.
type ItemVariant int

const (
	VariantMeasure      ItemVariant = iota // 위험요인 + 개선대책
	VariantActionResult                    // 위험요인 + 조치결과
)

// RiskItem 위험성평가 항목 한 건
type RiskItem struct {
	Variant      ItemVariant
	RiskFactor   string
	Measure      string // VariantMeasure 전용
	ActionResult string // VariantActionResult 전용
}

// RiskConfirmation 근로자 확인 서명 (수시 전용)
type RiskConfirmation struct {
	WorkerName string
	Position   string
}

// RiskDocument 위험성평가 파일 하나의 파싱 결과
type RiskDocument struct {
	Filename          string
	Meta              RiskMeta
	RiskType          string // 최초/수시/정기
	Items             []RiskItem
	Confirmations     []RiskConfirmation
	ActionResultCount int
}

// TbmMeta TBM 파일명 메타데이터
type TbmMeta struct {
	WorkDate    time.Time
	SiteName    string
	PartnerName string
}

// TbmDocument TBM 활동일지 하나의 파싱 결과
type TbmDocument struct {
	Filename     string
	Meta         TbmMeta
	Content      string // 작업내용
	Participants []string
}
