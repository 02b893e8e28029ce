package app

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// writeReviewPDF renders a minimal one-pass review sheet for the admin
// reviewer: proposed enhancements with confidence, then mined
// recommendations. Intentionally simple layout, no pagination logic
// beyond gofpdf's automatic page breaks.
func writeReviewPDF(rep Report, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}

	heading("Proposed enhancements")
	if len(rep.Enhancements) == 0 {
		pdf.MultiCell(0, 5, "None found.", "", "L", false)
	}
	for _, e := range rep.Enhancements {
		line := fmt.Sprintf("[%d%%] %s", e.Confidence, e.Type)
		if e.FieldName != "" {
			line += " (" + e.FieldName + ")"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 5, line, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5, e.Content, "", "L", false)
		pdf.Ln(2)
	}

	pdf.Ln(4)
	heading("Recommendations")
	if len(rep.Recommendations) == 0 {
		pdf.MultiCell(0, 5, "None found.", "", "L", false)
	}
	for _, r := range rep.Recommendations {
		line := string(r.Type) + ": " + r.Title
		if r.PageKey != "" {
			line += " [" + r.PageKey + "]"
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 5, line, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		if r.Summary != "" {
			pdf.MultiCell(0, 5, r.Summary, "", "L", false)
		}
		pdf.Ln(2)
	}

	return pdf.OutputFileAndClose(outPath)
}
