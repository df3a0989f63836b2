package report

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// hard wraps 把正文中的换行渲染成 <br>。
var md = goldmark.New(goldmark.WithRendererOptions(gmhtml.WithHardWraps()))

// Markdown renders sections as a markdown document.
func Markdown(sections []Section) string {
	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString("### ")
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
		if body := strings.TrimSpace(s.Body); body != "" {
			sb.WriteString(escapeMarkdown(body))
			sb.WriteString("\n\n")
		}
	}
	sb.WriteString("*")
	sb.WriteString(Attribution)
	sb.WriteString("*\n")
	return sb.String()
}

// escapeMarkdown 让模型输出按原文渲染：ASCII 标点全部加反斜杠转义，行首缩进去掉，
// 正文里的 markdown 语法不会变成文档结构。
func escapeMarkdown(body string) string {
	lines := bodyLines(body)
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, r := range strings.TrimLeft(line, " \t") {
			if r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r)) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func mdToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeHTML(sections []Section, path string, _ layout) error {
	body, err := mdToHTML(Markdown(sections))
	if err != nil {
		return err
	}
	page := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(BaseName), body)
	return os.WriteFile(path, []byte(page), 0644)
}
