package report

import (
	"fmt"
	"os"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfUTF8Font   = "ReportFont"
	pdfMargin     = 20.0
	headingSize   = 13.0
	bodySize      = 11.0
	headingHeight = 7.0
	lineHeight    = 5.5
)

// writePDF lays sections out on A4 pages. Page breaks are left to fpdf.
func writePDF(sections []Section, path string, l layout) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(BaseName, true)

	family := pdfFont
	tr := func(s string) string { return s }
	if l.fontFile != "" {
		data, err := os.ReadFile(l.fontFile)
		if err != nil {
			return fmt.Errorf("read pdf font: %w", err)
		}
		// 同一份字体注册三种样式，粗体和斜体不会有字形变化。
		family = pdfUTF8Font
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8FontFromBytes(family, style, data)
		}
	} else {
		// 内置字体只支持 cp1252，范围外的字符无法输出。
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.AddPage()

	for _, s := range sections {
		pdf.SetFont(family, "B", headingSize)
		pdf.MultiCell(0, headingHeight, tr(s.Title), "", "L", false)
		pdf.Ln(1)

		pdf.SetFont(family, "", bodySize)
		for _, line := range bodyLines(s.Body) {
			if line == "" {
				pdf.Ln(lineHeight)
				continue
			}
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		}
		pdf.Ln(4)
	}

	pdf.SetFont(family, "I", 10)
	pdf.MultiCell(0, lineHeight, tr(Attribution), "", "L", false)

	return pdf.OutputFileAndClose(path)
}
