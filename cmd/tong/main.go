package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/sirupsen/logrus"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/config"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/importer"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/server"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/store"
)

var (
	serve   = flag.Bool("serve", false, "수집 API 서버 기동 (기본은 1회 수집 후 종료)")
	reset   = flag.Bool("reset", false, "원장과 적재 데이터를 비우고 전체 재수집")
	dataDir = flag.String("dataDir", "", "원본 엑셀 저장소 디렉터리 (설정 파일 덮어씀)")
	port    = flag.Int("port", 0, "서버 포트 (설정 파일 덮어씀)")
)

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("설정 로드 실패, 기본 설정 사용: %v", err)
		cfg = config.DefaultConfig()
	}
	if *dataDir != "" {
		cfg.Data.RepositoryDir = *dataDir
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	if *serve {
		srv := server.NewServer(cfg, logger)
		defer srv.Close()

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.WithField("addr", addr).Info("서버 기동")
		if err := srv.Run(addr); err != nil {
			logger.WithError(err).Fatal("서버 기동 실패")
		}
		return
	}

	st, err := store.New(cfg.Data.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("저장소 초기화 실패")
	}
	defer st.Close()

	coordinator := importer.NewCoordinator(st, cfg, logger)
	report, err := coordinator.Run(importer.Options{Reset: *reset})
	if err != nil {
		logger.WithError(err).Fatal("수집 실패")
	}

	for _, kind := range []model.DocumentKind{model.KindAttendance, model.KindRisk, model.KindTBM} {
		s := report.Kinds[kind]
		fmt.Printf("%-10s 처리 %d건 / 레코드 %d건 / 건너뜀 %d건 / 실패 %d건\n",
			kind, s.Files, s.Records, s.Skipped, s.Failed)
	}
	fmt.Printf("소요 시간: %s\n", report.Duration)
}
