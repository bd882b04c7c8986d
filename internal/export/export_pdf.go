package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Berghsen/timeline/internal/timeacct"
)

// buildReportPDF renders a report as a minimal single-page PDF: a title,
// one text line per calendar day and the summary block underneath. The
// writer emits the PDF objects by hand so the export needs no external
// renderer.
func buildReportPDF(employeeName string, report timeacct.Report) ([]byte, error) {
	lines := reportLines(employeeName, report)

	var content strings.Builder
	content.WriteString("BT\n/F1 11 Tf\n13 TL\n40 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func reportLines(employeeName string, report timeacct.Report) []string {
	lines := make([]string, 0, len(report.Rows)+10)
	lines = append(lines, report.Title)
	if employeeName != "" {
		lines = append(lines, employeeName)
	}
	lines = append(lines, "")

	for _, row := range report.Rows {
		cols := []string{row.DateLabel, row.StatusLabel}
		if row.DurationText != "" {
			cols = append(cols, row.DurationText)
		}
		if row.Bonnummer != "" && row.Bonnummer != "-" {
			cols = append(cols, "bon "+row.Bonnummer)
		}
		if row.Rechtstreeks == "Ja" {
			cols = append(cols, "rechtstreeks")
		}
		if row.Comment != "" && row.Comment != "-" {
			cols = append(cols, row.Comment)
		}
		lines = append(lines, strings.Join(cols, "  |  "))
	}

	sum := report.Summary
	lines = append(lines,
		"",
		"Totaal: "+timeacct.FormatMinutes(sum.TotalMinutes),
		fmt.Sprintf("Gewerkte dagen: %d", sum.WorkedDays),
		"Nachturen: "+timeacct.FormatMinutes(sum.NightMinutes),
		"Zondaguren: "+timeacct.FormatMinutes(sum.SundayMinutes),
		"Reistijd per dag: "+timeacct.FormatMinutes(sum.TravelTimeMinutes),
	)
	return lines
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
