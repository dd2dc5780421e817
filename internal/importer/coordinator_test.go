package importer

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/config"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/store"
)

type testEnv struct {
	cfg   *config.AppConfig
	store *store.Store
	coord *Coordinator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Data.RepositoryDir = t.TempDir()
	for _, dir := range []string{cfg.AttendanceDir(), cfg.RiskDir(), cfg.TbmDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	st, err := store.New(filepath.Join(t.TempDir(), "safety.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &testEnv{cfg: cfg, store: st, coord: NewCoordinator(st, cfg, log)}
}

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

func (e *testEnv) writeAttendanceFixture(t *testing.T, filename string) {
	writeWorkbook(t, filepath.Join(e.cfg.AttendanceDir(), filename), "출퇴근 무사고 확인서", map[string]string{
		"B15": "1",
		"C15": "관리자",
		"E15": "홍길동",
		"K15": "85.03.10",
		"Q15": "08:00:00",
		"T15": "-",
		"W15": "무사고",
	})
}

func (e *testEnv) writeRiskFixture(t *testing.T, filename string) {
	writeWorkbook(t, filepath.Join(e.cfg.RiskDir(), filename), "수시 위험성평가표", map[string]string{
		"B5":  "NO",
		"H5":  "위험요인",
		"Y5":  "개선대책",
		"H6":  "고소작업 추락 위험",
		"Y6":  "안전난간 설치",
		"A8":  "위험성평가 근로자 확인",
		"A9":  "직종",
		"E9":  "이름",
		"A10": "전기",
		"E10": "김철수",
	})
}

func (e *testEnv) writeTbmFixture(t *testing.T, filename string) {
	writeWorkbook(t, filepath.Join(e.cfg.TbmDir(), filename), "TBM 활동일지", map[string]string{
		"A3":  "작업내용",
		"F3":  "지하 2층 배관 용접",
		"C8":  "이름",
		"C9":  "홍길동",
		"C10": "김영희",
	})
}

func TestCoordinator_EndToEnd(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.writeAttendanceFixture(t, "출퇴근무사고_현장A_협력사B_250227.xlsx")
	env.writeRiskFixture(t, "위험성평가_현장A_협력사B_250101_250107_0.xlsx")
	env.writeTbmFixture(t, "TBM_현장A_협력사B_250227.xlsx")

	report, err := env.coord.Run(Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.RunID == "" {
		t.Fatalf("missing run id")
	}
	if report.TotalFailed() != 0 {
		t.Fatalf("unexpected failures: %+v", report.Kinds)
	}

	want := map[model.DocumentKind]model.KindStats{
		model.KindAttendance: {Files: 1, Records: 1},
		model.KindRisk:       {Files: 1, Records: 2}, // 항목 1 + 근로자 확인 1
		model.KindTBM:        {Files: 1, Records: 2},
	}
	for kind, stats := range want {
		got := report.Kinds[kind]
		if *got != stats {
			t.Fatalf("%s stats = %+v, want %+v", kind, *got, stats)
		}
	}

	var role string
	err = env.store.DB().QueryRow(`SELECT role FROM attendance_logs WHERE worker_name = ?`, "홍길동").Scan(&role)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if role != model.RoleManager {
		t.Fatalf("unexpected role: %q", role)
	}
	for table, wantRows := range map[string]int{
		"risk_items":         1,
		"risk_confirmations": 1,
		"tbm_participants":   2,
		"processed_files":    3,
	} {
		n, err := env.store.TableCount(table)
		if err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != wantRows {
			t.Fatalf("%s: want %d rows got %d", table, wantRows, n)
		}
	}
}

func TestCoordinator_SecondRunSkipsProcessedFiles(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.writeAttendanceFixture(t, "출퇴근무사고_현장A_협력사B_250227.xlsx")

	if _, err := env.coord.Run(Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := env.coord.Run(Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	stats := report.Kinds[model.KindAttendance]
	if stats.Files != 0 || stats.Skipped != 1 {
		t.Fatalf("second run must skip: %+v", stats)
	}
	if n, _ := env.store.TableCount("attendance_logs"); n != 1 {
		t.Fatalf("rows duplicated: %d", n)
	}
}

func TestCoordinator_CorruptFileIsolated(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.writeAttendanceFixture(t, "출퇴근무사고_현장A_협력사B_250227.xlsx")
	corrupt := filepath.Join(env.cfg.AttendanceDir(), "출퇴근무사고_현장A_협력사B_250228.xlsx")
	if err := os.WriteFile(corrupt, []byte("not a zip archive"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	report, err := env.coord.Run(Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	stats := report.Kinds[model.KindAttendance]
	if stats.Files != 1 || stats.Failed != 1 {
		t.Fatalf("corrupt file must not abort the batch: %+v", stats)
	}
	if n, _ := env.store.TableCount("attendance_logs"); n != 1 {
		t.Fatalf("good file not ingested: %d rows", n)
	}

	// 실패 파일은 원장에 남지 않아 다음 실행에서 다시 시도된다
	report, err = env.coord.Run(Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	stats = report.Kinds[model.KindAttendance]
	if stats.Skipped != 1 || stats.Failed != 1 {
		t.Fatalf("failed file must be retried: %+v", stats)
	}
}

func TestCoordinator_ResetReprocessesEverything(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.writeAttendanceFixture(t, "출퇴근무사고_현장A_협력사B_250227.xlsx")

	if _, err := env.coord.Run(Options{}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := env.coord.Run(Options{Reset: true})
	if err != nil {
		t.Fatalf("reset run: %v", err)
	}

	stats := report.Kinds[model.KindAttendance]
	if stats.Skipped != 0 || stats.Files != 1 {
		t.Fatalf("reset run must reprocess: %+v", stats)
	}
	if n, _ := env.store.TableCount("attendance_logs"); n != 1 {
		t.Fatalf("reset left stale rows: %d", n)
	}
}

func TestCoordinator_ExcelTempFilesExcludedFromRiskScan(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	temp := filepath.Join(env.cfg.RiskDir(), "~$위험성평가_현장A_협력사B_250101_250107_0.xlsx")
	if err := os.WriteFile(temp, []byte("excel lock file"), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	report, err := env.coord.Run(Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	stats := report.Kinds[model.KindRisk]
	if stats.Files != 0 || stats.Failed != 0 {
		t.Fatalf("~$ file must be ignored: %+v", stats)
	}
}
