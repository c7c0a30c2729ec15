// Package report serializes analysis results into a downloadable PDF.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"analyzer/internal/domain"

	"github.com/go-pdf/fpdf"
)

// Export renders results into a PDF document, one section per result, in
// input order. It is a pure transformation: no network access, and the only
// failure mode is an empty input.
func Export(results []domain.AnalysisResult) ([]byte, error) {
	if len(results) == 0 {
		return nil, domain.ErrEmptyInput
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("TerraTrust Climate Risk Report", false)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TerraTrust Climate Risk Report")
	pdf.Ln(14)

	for i, r := range results {
		if i > 0 {
			pdf.AddPage()
		}
		writeResult(pdf, r)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeResult(pdf *fpdf.Fpdf, r domain.AnalysisResult) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.MultiCell(0, 7, r.URL, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 24)
	pdf.Cell(0, 12, fmt.Sprintf("%d / 100", r.Total))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, r.Summary, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Category breakdown")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	writeScoreRow(pdf, "Carbon", r.Scores.Carbon)
	writeScoreRow(pdf, "Policy", r.Scores.Policy)
	writeScoreRow(pdf, "Reputation", r.Scores.Reputation)
	writeScoreRow(pdf, "Location", r.Scores.Location)
	pdf.Ln(4)

	writeList(pdf, "Green highlights", r.Highlights)
	writeList(pdf, "Red flags", r.Risks)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, fmt.Sprintf(
		"Signals: %d keyword(s), %d report link(s), hosting %s, est. %.2f g CO2/load, jurisdiction %s.",
		len(r.Raw.Website.FoundKeywords),
		len(r.Raw.Website.ReportLinks),
		r.Raw.Website.Hosting,
		r.Raw.Website.CarbonGrams,
		r.Raw.Location.RiskTier),
		"", "L", false)
}

func writeScoreRow(pdf *fpdf.Fpdf, label string, score int) {
	pdf.Cell(40, 6, label)
	pdf.Cell(0, 6, fmt.Sprintf("%d", score))
	pdf.Ln(6)
}

func writeList(pdf *fpdf.Fpdf, title string, items []string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	if len(items) == 0 {
		pdf.Cell(0, 6, "None")
		pdf.Ln(8)
		return
	}
	for _, item := range items {
		pdf.MultiCell(0, 6, "- "+strings.TrimSpace(item), "", "L", false)
	}
	pdf.Ln(2)
}
