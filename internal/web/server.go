// Package web serves the dashboard: a single page plus a small JSON API over the
// same ingest, summary, question and export paths the CLI uses.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/pipeline"
	"fjacquet/budget-tracker/internal/report"
	"fjacquet/budget-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8501"

// MessageIngestor stores one pasted message.
type MessageIngestor interface {
	IngestMessage(ctx context.Context, text string) pipeline.Result
}

// QuestionAnswerer answers a question about records.
type QuestionAnswerer interface {
	Answer(ctx context.Context, records []models.Record, question string) string
}

// RecordWriter renders every stored record in one export format.
type RecordWriter interface {
	WriteTo(ctx context.Context, f report.Format, w io.Writer) (int, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	engine   *gin.Engine
	ingestor MessageIngestor
	repo     store.Repository
	answerer QuestionAnswerer
	exporter RecordWriter
	logger   logging.Logger
}

// NewServer builds the router.
func NewServer(ingestor MessageIngestor, repo store.Repository, answerer QuestionAnswerer, exporter RecordWriter, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine:   gin.New(),
		ingestor: ingestor,
		repo:     repo,
		answerer: answerer,
		exporter: exporter,
		logger:   logger.WithField(logging.FieldComponent, "web"),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.index)

	api := s.engine.Group("/api")
	{
		api.GET("/transactions", s.listTransactions)
		api.POST("/transactions", s.addTransaction)
		api.GET("/summary", s.summary)
		api.POST("/ask", s.ask)
		api.GET("/export/:format", s.export)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Dashboard listening", logging.F("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down dashboard")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("HTTP request",
			logging.F("method", c.Request.Method),
			logging.F("path", c.Request.URL.Path),
			logging.F(logging.FieldStatus, c.Writer.Status()),
			logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	}
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}

func (s *Server) listTransactions(c *gin.Context) {
	records, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": records})
}

type messageRequest struct {
	Message string `json:"message"`
}

func (s *Server) addTransaction(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a message first."})
		return
	}

	res := s.ingestor.IngestMessage(c.Request.Context(), strings.TrimSpace(req.Message))
	switch res.Status {
	case pipeline.StatusSaved:
		c.JSON(http.StatusCreated, gin.H{"status": res.Status, "transaction": res.Record})
	case pipeline.StatusStoreFailed:
		c.JSON(http.StatusInternalServerError, gin.H{"status": res.Status, "error": res.Err.Error()})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": res.Status, "error": "Could not parse message."})
	}
}

func (s *Server) summary(c *gin.Context) {
	records, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	sum := report.Summarize(records)
	c.JSON(http.StatusOK, gin.H{
		"currency":    report.Currency,
		"count":       sum.Count,
		"total":       sum.Total,
		"by_category": sum.Breakdown(),
	})
}

type questionRequest struct {
	Question string `json:"question"`
}

func (s *Server) ask(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please type a question."})
		return
	}
	records, err := s.repo.ListAll(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": s.answerer.Answer(c.Request.Context(), records, req.Question)})
}

func (s *Server) export(c *gin.Context) {
	format, err := report.ParseFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if _, err := s.exporter.WriteTo(c.Request.Context(), format, &buf); err != nil {
		s.storeError(c, err)
		return
	}

	fileName := fmt.Sprintf("transactions_%s%s", time.Now().Format("20060102_150405"), format.Extension())
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) storeError(c *gin.Context, err error) {
	s.logger.WithError(err).Error("Request failed",
		logging.F("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
