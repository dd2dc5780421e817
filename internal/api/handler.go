package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/newtechremo/tong-xlsx-dashboard/internal/config"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/importer"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/model"
	"github.com/newtechremo/tong-xlsx-dashboard/internal/store"
)

// Handler 수집 경계 API. 보고/집계 엔드포인트는 이 서비스 범위 밖이다.
type Handler struct {
	store *store.Store
	cfg   *config.AppConfig
	log   *logrus.Logger
}

// NewHandler API 핸들러 생성
func NewHandler(st *store.Store, cfg *config.AppConfig, log *logrus.Logger) *Handler {
	return &Handler{store: st, cfg: cfg, log: log}
}

// RegisterRoutes 라우트 등록
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ingest", h.Ingest)
	rg.GET("/status", h.Status)
	rg.GET("/health", h.Health)
}

// IngestRequest 수집 요청
type IngestRequest struct {
	Reset bool `json:"reset"` // 원장을 비우고 전체 재수집
}

// Ingest 수집 실행
// POST /api/ingest
func (h *Handler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "잘못된 요청 본문"})
		return
	}

	coordinator := importer.NewCoordinator(h.store, h.cfg, h.log)
	report, err := coordinator.Run(importer.Options{Reset: req.Reset})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Status 원장/기준정보 현황
// GET /api/status
func (h *Handler) Status(c *gin.Context) {
	processed := map[string]int{}
	for _, kind := range []model.DocumentKind{model.KindAttendance, model.KindRisk, model.KindTBM} {
		count, err := h.store.CountProcessed(kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		processed[string(kind)] = count
	}

	sites, err := h.store.TableCount("sites")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	partners, err := h.store.TableCount("partners")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"processedFiles": processed,
		"sites":          sites,
		"partners":       partners,
	})
}

// Health 생존 확인
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
