package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
)

// 출퇴근 무사고 확인서 양식. 이 양식은 개정 이력 내내 열 위치가 안정적이라
// 마커 탐색 없이 고정 열을 쓴다.
const (
	attendanceSheetName = "출퇴근 무사고 확인서"
	attendanceDataStart = 15

	colAttNo       = 2  // NO
	colAttRole     = 3  // 구분 (관리자/근로자)
	colAttName     = 5  // 이름
	colAttPosition = 8  // 직책·직종
	colAttBirth    = 11 // 생년월일 (YY.MM.DD)
	colAttPhone    = 14 // 휴대폰 번호
	colAttCheckIn  = 17 // 출근 시간
	colAttCheckOut = 20 // 퇴근 시간
	colAttStatus   = 23 // 상태 (무사고/사고)
)

// 데이터 섹션 종료 마커 (사고발생자 명단 섹션 시작)
var attendanceEndMarkers = []string{"사고발생자", "명단"}

// 이름 셀에 이 토큰이 들어 있으면 머리글/합계 행으로 본다
var attendanceHeaderTokens = []string{"합계", "총계", "성명", "이름", "NO"}

// AttendanceParser 출퇴근 무사고 확인서 파서
type AttendanceParser struct {
	path      string
	seniorAge int
}

// NewAttendanceParser 출퇴근 파서 생성
func NewAttendanceParser(path string) *AttendanceParser {
	return &AttendanceParser{path: path, seniorAge: 65}
}

// NewAttendanceParserWithThreshold 고령자 기준 나이를 지정해 생성
func NewAttendanceParserWithThreshold(path string, seniorAge int) *AttendanceParser {
	p := NewAttendanceParser(path)
	p.seniorAge = seniorAge
	return p
}

// Parse 파일 하나를 파싱한다. 열기 → 메타데이터 → 데이터 행 → 닫기의
// 단선 진행이며 어느 단계에서든 에러가 나면 파일 전체를 실패로 돌린다.
func (p *AttendanceParser) Parse() (*model.AttendanceDocument, error) {
	f, err := excelize.OpenFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sh, err := LoadSheet(f, attendanceSheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(p.path), filepath.Ext(p.path))
	meta := ParseAttendanceFilename(stem)

	doc := &model.AttendanceDocument{
		Filename: filepath.Base(p.path),
		Meta:     meta,
	}

	endRow := p.findSectionEnd(sh, attendanceDataStart)
	for row := attendanceDataStart; row <= endRow; row++ {
		if entry := p.parseRow(sh, row, meta.WorkDate); entry != nil {
			doc.Entries = append(doc.Entries, *entry)
		}
	}
	return doc, nil
}

// findSectionEnd 사고발생자 명단 섹션 직전 행. 마커가 없으면 마지막 행까지가
// 데이터다 (경계 마커가 아예 없는 시트도 빈 결과가 아니라 끝까지 읽는다).
func (p *AttendanceParser) findSectionEnd(sh *Sheet, startRow int) int {
	for row := startRow; row <= sh.LastRow(); row++ {
		val := strings.TrimSpace(sh.Cell(row, colAttNo))
		if val != "" && containsAny(val, attendanceEndMarkers) {
			return row - 1
		}
	}
	return sh.LastRow()
}

func (p *AttendanceParser) parseRow(sh *Sheet, row int, workDate time.Time) *model.AttendanceEntry {
	// 선행 번호가 정수가 아니면 데이터 행이 아니다
	if !isOrdinal(sh.Cell(row, colAttNo)) {
		return nil
	}

	name := NormalizeText(sh.Cell(row, colAttName))
	if name == "" || containsAny(name, attendanceHeaderTokens) {
		return nil
	}

	entry := &model.AttendanceEntry{
		WorkerName: name,
		Role:       model.RoleWorker,
	}
	if strings.Contains(sh.Cell(row, colAttRole), "관리") {
		entry.Role = model.RoleManager
	}

	if birth, ok := ParseBirthDate(sh.Cell(row, colAttBirth)); ok {
		entry.BirthDate = &birth
		if !workDate.IsZero() {
			age := Age(birth, workDate)
			entry.Age = &age
			entry.IsSenior = IsSenior(birth, workDate, p.seniorAge)
		}
	}

	if clock, ok := ParseClock(sh.Cell(row, colAttCheckIn)); ok {
		entry.CheckIn = clock
	}
	if clock, ok := ParseClock(sh.Cell(row, colAttCheckOut)); ok {
		entry.CheckOut = clock
	}

	// "무사고"에도 "사고"가 포함되므로 부정 토큰을 먼저 제외해야 한다
	status := strings.TrimSpace(sh.Cell(row, colAttStatus))
	entry.HasAccident = strings.Contains(status, "사고") && !strings.Contains(status, "무사고")

	return entry
}
