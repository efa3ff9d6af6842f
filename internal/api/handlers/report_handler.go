package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/japapin/martcon9/internal/domain"
	"github.com/japapin/martcon9/internal/excel"
	"github.com/japapin/martcon9/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Upload accepts a single XLSX export, validates its columns, builds the
// coverage report and returns the three tables plus a download ID.
func (h *ReportHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to open uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer file.Close()

	rows, err := excel.ReadStockRows(file)
	if err != nil {
		var missing *domain.MissingColumnsError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           missing.Error(),
				"missing_columns": missing.Columns,
			})
			return
		}
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("failed to parse uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse uploaded file"})
		return
	}

	report, err := h.reportService.BuildReport(rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to build report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	id := h.reportService.Store(report)
	c.JSON(http.StatusOK, gin.H{
		"id":               id,
		"summary":          report.Summary,
		"distribution_abs": report.DistributionAbs,
		"distribution_pct": report.DistributionPct,
	})
}

// Download streams the serialized workbook of a previously built report
// under the fixed file name and spreadsheet MIME type.
func (h *ReportHandler) Download(c *gin.Context) {
	report, ok := h.reportService.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+domain.ReportFileName+`"`)
	c.Data(http.StatusOK, domain.ReportMIMEType, report.DocumentBytes)
}

// Pareto returns one branch's percent distribution sorted descending with
// the cumulative series, for chart rendering by the caller.
func (h *ReportHandler) Pareto(c *gin.Context) {
	report, ok := h.reportService.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}

	branch := strings.TrimSpace(c.Query("branch"))
	if branch == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch query parameter is required"})
		return
	}

	points, ok := h.reportService.Pareto(report, branch)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "branch not found in report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"branch": branch, "points": points})
}
