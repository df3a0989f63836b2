package report

import (
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont        = "Times New Roman"
	docxBodySize    = 12
	docxHeadingSize = 14
	docxNoteSize    = 10
)

func writeDOCX(sections []Section, path string, _ layout) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	for _, s := range sections {
		addRun(doc.AddParagraph(""), s.Title, true, docxHeadingSize)
		// 每一行单独成段，保持原文换行。
		for _, line := range bodyLines(s.Body) {
			addRun(doc.AddParagraph(""), line, false, docxBodySize)
		}
		doc.AddParagraph("")
	}
	addRun(doc.AddParagraph(""), Attribution, false, docxNoteSize)

	return doc.SaveTo(path)
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	if text == "" {
		return
	}
	run := p.AddText(text).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
