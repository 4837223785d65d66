package pdf

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"printstore/internal/models"
)

// ReportGenerator renders order reports as downloadable PDFs.
type ReportGenerator struct {
	title string
}

func NewReportGenerator(title string) *ReportGenerator {
	if title == "" {
		title = "Printstore"
	}
	return &ReportGenerator{title: title}
}

func (g *ReportGenerator) OrderReport(report *models.OrderReport) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Order report", false)
	doc.SetAuthor(g.title, false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(0, 10, "ORDER REPORT", "", 1, "C", false, 0, "")

	doc.SetFont("Arial", "", 12)
	period := fmt.Sprintf("%s - %s",
		report.From.Format("02.01.2006"),
		report.To.Format("02.01.2006"),
	)
	doc.CellFormat(0, 7, period, "", 1, "C", false, 0, "")
	g.hr(doc)
	doc.Ln(3)

	g.sectionTitle(doc, "Summary")
	g.kvLine(doc, "Orders", fmt.Sprintf("%d", report.OrderCount))
	g.kvLine(doc, "Revenue", fmt.Sprintf("%.2f", report.Revenue))
	g.kvLine(doc, "Average order", fmt.Sprintf("%.2f", report.AverageTotal))
	doc.Ln(2)
	g.hr(doc)

	if len(report.ByStatus) > 0 {
		doc.Ln(3)
		g.sectionTitle(doc, "Orders by status")
		statuses := make([]string, 0, len(report.ByStatus))
		for s := range report.ByStatus {
			statuses = append(statuses, s)
		}
		sort.Strings(statuses)
		for _, s := range statuses {
			g.kvLine(doc, s, fmt.Sprintf("%d", report.ByStatus[s]))
		}
		doc.Ln(2)
		g.hr(doc)
	}

	if len(report.TopProducts) > 0 {
		doc.Ln(3)
		g.sectionTitle(doc, "Top products")
		doc.SetFont("Arial", "B", 11)
		doc.CellFormat(100, 7, "Product", "B", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, "Qty", "B", 0, "R", false, 0, "")
		doc.CellFormat(40, 7, "Revenue", "B", 1, "R", false, 0, "")
		doc.SetFont("Arial", "", 11)
		for _, line := range report.TopProducts {
			doc.CellFormat(100, 7, line.ProductName, "", 0, "L", false, 0, "")
			doc.CellFormat(30, 7, fmt.Sprintf("%d", line.Quantity), "", 0, "R", false, 0, "")
			doc.CellFormat(40, 7, fmt.Sprintf("%.2f", line.Revenue), "", 1, "R", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render order report pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *ReportGenerator) sectionTitle(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Arial", "B", 13)
	doc.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
}

func (g *ReportGenerator) kvLine(doc *gofpdf.Fpdf, key, value string) {
	doc.CellFormat(60, 7, key+":", "", 0, "L", false, 0, "")
	doc.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(doc *gofpdf.Fpdf) {
	x, y := doc.GetXY()
	pageW, _ := doc.GetPageSize()
	left, _, right, _ := doc.GetMargins()
	doc.Line(left, y, pageW-right, y)
	doc.SetXY(x, y+1)
}
