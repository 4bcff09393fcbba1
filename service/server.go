// Package service exposes the EDA engine over HTTP: quality assessment of
// pre-aggregated features, end-to-end CSV analysis, service metrics and the
// optional analysis history.
package service

import (
	"time"

	"github.com/gin-gonic/gin"

	"edakit/internal"
	"edakit/internal/config"
	"edakit/internal/eda"
	"edakit/ports"
)

// Server is the HTTP wrapper around the EDA engine
type Server struct {
	router  *gin.Engine
	rules   eda.RuleConfig
	metrics *Metrics
	history ports.HistoryRepository
	logger  *internal.Logger
}

// NewServer creates a server. history may be nil, which disables /history
// and skips recording.
func NewServer(cfg config.ServerConfig, rules eda.RuleConfig, history ports.HistoryRepository) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		router:  gin.New(),
		rules:   rules,
		metrics: NewMetrics(),
		history: history,
		logger:  internal.NewDefaultLogger(),
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.observeRequests())

	s.router.GET("/health", s.handleHealth)
	s.router.POST("/quality", s.handleQuality)
	s.router.POST("/quality-from-csv", s.handleQualityFromCSV)
	s.router.POST("/quality-flags-from-csv", s.handleQualityFlagsFromCSV)
	s.router.GET("/metrics", s.handleMetrics)
	s.router.GET("/history", s.handleHistory)

	return s
}

// Router exposes the gin engine for tests and embedding
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the listener fails
func (s *Server) Run(addr string) error {
	s.logger.Info("[Service] listening on %s", addr)
	return s.router.Run(addr)
}

// observeRequests updates the metrics snapshot once per handled request
func (s *Server) observeRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.metrics.Observe(c.FullPath(), time.Since(start))
	}
}
