package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/config"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/parser"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/store"
)

// Coordinator 수집 조율자. 종류별 디렉터리를 순회하며 파일 단위로
// 파싱→적재를 수행한다. 파일 하나의 실패는 그 파일에서 격리되고
// 배치는 계속 진행된다.
type Coordinator struct {
	store *store.Store
	cfg   *config.AppConfig
	log   *logrus.Logger
}

// NewCoordinator 수집 조율자 생성
func NewCoordinator(st *store.Store, cfg *config.AppConfig, log *logrus.Logger) *Coordinator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Coordinator{store: st, cfg: cfg, log: log}
}

// Options 수집 옵션
type Options struct {
	Reset bool // true 면 원장과 종속 테이블을 비우고 전체 재수집
}

// Run 수집 실행. 처리는 종류별 순차 진행이다. 동시화하려면 기준 정보
// get-or-create 경쟁만 직렬화하면 되지만 현재 규모에서는 필요가 없다.
func (c *Coordinator) Run(opts Options) (*model.IngestReport, error) {
	report := model.NewIngestReport(uuid.NewString(), opts.Reset)

	c.log.WithFields(logrus.Fields{
		"run_id": report.RunID,
		"reset":  opts.Reset,
	}).Info("수집 시작")

	if opts.Reset {
		if err := c.store.Reset(); err != nil {
			return nil, fmt.Errorf("reset store: %w", err)
		}
	}

	c.processKind(report, model.KindAttendance, c.cfg.AttendanceDir())
	c.processKind(report, model.KindRisk, c.cfg.RiskDir())
	c.processKind(report, model.KindTBM, c.cfg.TbmDir())

	report.Duration = time.Since(report.StartedAt)

	c.log.WithFields(logrus.Fields{
		"run_id":   report.RunID,
		"duration": report.Duration,
		"failed":   report.TotalFailed(),
	}).Info("수집 완료")

	return report, nil
}

func (c *Coordinator) processKind(report *model.IngestReport, kind model.DocumentKind, dir string) {
	stats := report.Kinds[kind]

	files, err := listWorkbooks(dir, kind)
	if err != nil {
		c.log.WithFields(logrus.Fields{"kind": kind, "dir": dir}).
			WithError(err).Warn("디렉터리를 읽을 수 없어 건너뜀")
		return
	}

	c.log.WithFields(logrus.Fields{"kind": kind, "files": len(files)}).Info("파일 탐색")

	for _, path := range files {
		filename := filepath.Base(path)

		processed, err := c.store.IsProcessed(filename, kind)
		if err != nil {
			c.log.WithField("filename", filename).WithError(err).Error("원장 조회 실패")
			stats.Failed++
			continue
		}
		if processed {
			stats.Skipped++
			continue
		}

		records, err := c.ingestFile(path, kind)
		if err != nil {
			// 깨진 파일 하나가 배치를 중단시키지 않는다. 원장에도 남기지
			// 않으므로 다음 실행에서 다시 시도된다.
			stats.Failed++
			c.log.WithFields(logrus.Fields{"kind": kind, "filename": filename}).
				WithError(err).Warn("파일 처리 실패")
			continue
		}

		stats.Files++
		stats.Records += records
	}

	c.log.WithFields(logrus.Fields{
		"kind":    kind,
		"files":   stats.Files,
		"records": stats.Records,
		"skipped": stats.Skipped,
		"failed":  stats.Failed,
	}).Info("종류별 수집 완료")
}

func (c *Coordinator) ingestFile(path string, kind model.DocumentKind) (int, error) {
	switch kind {
	case model.KindAttendance:
		doc, err := parser.NewAttendanceParserWithThreshold(path, c.cfg.Ingest.SeniorAge).Parse()
		if err != nil {
			return 0, err
		}
		return c.store.SaveAttendance(doc)
	case model.KindRisk:
		doc, err := parser.NewRiskParser(path).Parse()
		if err != nil {
			return 0, err
		}
		return c.store.SaveRiskDocument(doc)
	case model.KindTBM:
		doc, err := parser.NewTbmParser(path).Parse()
		if err != nil {
			return 0, err
		}
		return c.store.SaveTbm(doc)
	}
	return 0, fmt.Errorf("unknown document kind: %s", kind)
}

// listWorkbooks 디렉터리의 .xlsx 파일 목록. 엑셀이 만드는 임시 파일(~$)은
// 위험성평가 디렉터리에서 제외한다 (현장 PC 가 공유폴더를 열어둔 채로
// 도는 경우가 실제로 있다).
func listWorkbooks(dir string, kind model.DocumentKind) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		if kind == model.KindRisk && strings.HasPrefix(name, "~$") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
