package service

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"edakit/adapters/reader"
	"edakit/domain/core"
	"edakit/domain/table"
	"edakit/internal/eda"
	"edakit/internal/errors"
	"edakit/ports"

	domaineda "edakit/domain/eda"
)

// CSVAnalysisResponse is the JSON shape of /quality-from-csv
type CSVAnalysisResponse struct {
	AnalysisID core.AnalysisID             `json:"analysis_id"`
	Filename   string                      `json:"filename"`
	NRows      int                         `json:"n_rows"`
	NCols      int                         `json:"n_cols"`
	Columns    []domaineda.ColumnSummary   `json:"columns"`
	Missing    domaineda.MissingnessReport `json:"missingness"`
	Features   domaineda.QualityFeatures   `json:"features"`
	Quality    domaineda.QualityResult     `json:"quality"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleQuality assesses a pre-aggregated features payload. Absent fields
// decode to zero values and simply do not trigger rules.
func (s *Server) handleQuality(c *gin.Context) {
	var features domaineda.QualityFeatures
	if err := c.ShouldBindJSON(&features); err != nil {
		s.respondError(c, http.StatusBadRequest, errors.Wrap(errors.MalformedInput("invalid features payload"), err.Error()))
		return
	}
	c.JSON(http.StatusOK, eda.AssessQuality(features, s.rules))
}

func (s *Server) handleQualityFromCSV(c *gin.Context) {
	response, ok := s.analyzeUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response)
}

// handleQualityFlagsFromCSV runs the same analysis but responds with the
// quality result alone.
func (s *Server) handleQualityFlagsFromCSV(c *gin.Context) {
	response, ok := s.analyzeUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"analysis_id": response.AnalysisID,
		"filename":    response.Filename,
		"quality":     response.Quality,
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleHistory(c *gin.Context) {
	if s.history == nil {
		s.respondError(c, http.StatusServiceUnavailable, errors.New(errors.CodeNotFound, "analysis history is disabled"))
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.respondError(c, http.StatusBadRequest, errors.ConfigInvalid("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := s.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, errors.Wrap(err, "failed to load history"))
		return
	}
	if records == nil {
		records = []*ports.AnalysisRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"analyses": records})
}

// analyzeUpload parses the uploaded CSV and runs the full engine pass. The
// bool result reports whether a response can be written; errors have already
// been sent otherwise.
func (s *Server) analyzeUpload(c *gin.Context) (*CSVAnalysisResponse, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, http.StatusBadRequest, errors.MalformedInput("missing file upload"))
		return nil, false
	}

	separator := ','
	if sep := c.PostForm("sep"); sep != "" {
		runes := []rune(sep)
		if len(runes) != 1 {
			s.respondError(c, http.StatusBadRequest, errors.ConfigInvalid("sep must be a single character"))
			return nil, false
		}
		separator = runes[0]
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.respondError(c, http.StatusBadRequest, errors.Wrap(errors.MalformedInput("unreadable upload"), err.Error()))
		return nil, false
	}
	defer file.Close()

	view, err := reader.NewCSVReader(separator, c.PostForm("encoding")).Read(file)
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return nil, false
	}

	response := s.analyze(view, fileHeader.Filename)
	s.metrics.ObserveDataset(response.Filename, response.NRows, response.NCols)
	s.recordHistory(c, response)
	return response, true
}

func (s *Server) analyze(view *table.View, filename string) *CSVAnalysisResponse {
	summaries := eda.Profile(view)
	missing := eda.Missingness(view)
	features := eda.FeaturesFromTable(view, summaries, missing, s.rules)

	return &CSVAnalysisResponse{
		AnalysisID: core.NewAnalysisID(),
		Filename:   filename,
		NRows:      view.NumRows(),
		NCols:      view.NumCols(),
		Columns:    summaries,
		Missing:    missing,
		Features:   features,
		Quality:    eda.AssessQuality(features, s.rules),
	}
}

// recordHistory is best effort; a failed insert never fails the request
func (s *Server) recordHistory(c *gin.Context, response *CSVAnalysisResponse) {
	if s.history == nil {
		return
	}
	record := &ports.AnalysisRecord{
		ID:        response.AnalysisID,
		Filename:  response.Filename,
		Rows:      response.NRows,
		Cols:      response.NCols,
		Score:     response.Quality.Score,
		Flags:     response.Quality,
		CreatedAt: core.Now(),
	}
	if err := s.history.Record(c.Request.Context(), record); err != nil {
		s.logger.Warn("[Service] failed to record analysis %s: %v", response.AnalysisID, err)
	}
}

func (s *Server) respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
}
