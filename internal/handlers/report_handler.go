package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"printstore/internal/pdf"
	"printstore/internal/services"
)

type ReportHandler struct {
	service services.ReportService
	pdfGen  *pdf.ReportGenerator
}

func NewReportHandler(service services.ReportService, pdfGen *pdf.ReportGenerator) *ReportHandler {
	return &ReportHandler{service: service, pdfGen: pdfGen}
}

// parseRange reads from/to query params (YYYY-MM-DD); default is the
// trailing 30 days. The upper bound is exclusive.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q", v)
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q", v)
		}
		to = t.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to must be after from")
	}
	return from, to, nil
}

// @Summary      Order report for a period
// @Tags         Reports
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {object}  models.OrderReport
// @Security     BearerAuth
// @Router       /api/reports/orders [get]
func (h *ReportHandler) OrderReport(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		businessError(c, err.Error())
		return
	}
	report, err := h.service.OrderReport(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Order report as a PDF download
// @Tags         Reports
// @Produce      application/pdf
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {file}  file
// @Security     BearerAuth
// @Router       /api/reports/orders/pdf [get]
func (h *ReportHandler) OrderReportPDF(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		businessError(c, err.Error())
		return
	}
	report, err := h.service.OrderReport(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	data, err := h.pdfGen.OrderReport(report)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("order_report_%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
