package server

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/api"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/config"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/store"
)

// Server 수집 경계 HTTP 서버
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// NewServer 서버 생성
func NewServer(cfg *config.AppConfig, logger *logrus.Logger) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	sqliteStore, err := store.New(cfg.Data.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	handler := api.NewHandler(sqliteStore, cfg, logger)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
	}

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	rg := s.router.Group("/api")
	handler.RegisterRoutes(rg)

	return s
}

// Run 서버 기동
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 저장소 연결 종료
func (s *Server) Close() error {
	return s.store.Close()
}
