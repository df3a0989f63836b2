// Package report renders a finished discussion into fixed-layout documents.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fintalk/roundtable"
)

const (
	// BaseName 是报告文件名（不含扩展名），固定不可配置。
	BaseName = "FinTalk_Report"

	Attribution      = "Generated by FinTalk – AI Economic Roundtable"
	TopicPlaceholder = "—"
)

// Format is an output document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

// Section is one heading plus its body text.
type Section struct {
	Title string
	Body  string
}

// Sections returns the six report sections in their fixed order.
func Sections(r roundtable.Result) []Section {
	topic := r.Topic
	if strings.TrimSpace(topic) == "" {
		topic = TopicPlaceholder
	}
	return []Section{
		{Title: "Topic", Body: topic},
		{Title: "Moderator Intro", Body: r.ModeratorIntro},
		{Title: "Optimistic View", Body: r.BullishView},
		{Title: "Cautious View", Body: r.BearishView},
		{Title: "Moderator Wrap-up", Body: r.ModeratorWrap},
		{Title: "Summary", Body: r.Summary},
	}
}

// bodyLines splits body on newlines; each element becomes its own line in the output.
func bodyLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.Split(body, "\n")
}

// layout carries rendering settings shared by the writers.
type layout struct {
	fontFile string
}

type writer func(sections []Section, path string, l layout) error

var writers = map[Format]writer{
	FormatPDF:  writePDF,
	FormatDOCX: writeDOCX,
	FormatHTML: writeHTML,
}

// Exporter writes reports into a directory.
type Exporter struct {
	dir     string
	formats []Format
	layout  layout
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFontFile embeds the TrueType font at path in the PDF so text outside
// cp1252 is printed as is. Without it the built-in Helvetica is used.
func WithFontFile(path string) Option {
	return func(e *Exporter) {
		e.layout.fontFile = path
	}
}

// NewExporter validates formats. PDF is always produced, first.
func NewExporter(dir string, formats []string, opts ...Option) (*Exporter, error) {
	out := []Format{FormatPDF}
	for _, f := range formats {
		format := Format(strings.ToLower(strings.TrimSpace(f)))
		if _, ok := writers[format]; !ok {
			return nil, fmt.Errorf("report format %q not supported", f)
		}
		if format == FormatPDF || contains(out, format) {
			continue
		}
		out = append(out, format)
	}
	e := &Exporter{dir: dir, formats: out}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Dir returns the directory reports are written into.
func (e *Exporter) Dir() string {
	return e.dir
}

// WithDir returns a copy of e writing into dir.
func (e *Exporter) WithDir(dir string) *Exporter {
	return &Exporter{dir: dir, formats: e.formats, layout: e.layout}
}

// Export renders r in every configured format and returns the written paths.
func (e *Exporter) Export(r roundtable.Result) ([]string, error) {
	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0755); err != nil {
			return nil, fmt.Errorf("create report dir: %w", err)
		}
	}
	sections := Sections(r)
	paths := make([]string, 0, len(e.formats))
	for _, format := range e.formats {
		path := filepath.Join(e.dir, BaseName+"."+string(format))
		if err := writers[format](sections, path, e.layout); err != nil {
			return paths, fmt.Errorf("write %s report: %w", format, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func contains(formats []Format, f Format) bool {
	for _, x := range formats {
		if x == f {
			return true
		}
	}
	return false
}
