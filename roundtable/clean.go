package roundtable

import (
	"regexp"
	"strings"
)

// CleanRule 是一个纯文本变换，按顺序作用于部分清理过的文本。
type CleanRule struct {
	Name  string
	Apply func(string) string
}

func removeRule(name, pattern string) CleanRule {
	re := regexp.MustCompile(pattern)
	return CleanRule{
		Name: name,
		Apply: func(s string) string {
			return re.ReplaceAllString(s, "")
		},
	}
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// CleanRules strip meta commentary the local model tends to leak. Order matters.
var CleanRules = []CleanRule{
	removeRule("note", `(?im)\bnote:.*$`),
	removeRule("self-identification", `(?im)\bi am (selin|bullish|bearish).*$`),
	removeRule("written-by", `(?im)\bthis response was written\b.*$`),
	removeRule("please-review", `(?im)\bplease review\b.*$`),
	removeRule("readability", `(?im)\bclarity and readability\b.*$`),
	{
		Name: "blank-lines",
		Apply: func(s string) string {
			return blankRunRe.ReplaceAllString(s, "\n\n")
		},
	},
}

// Clean applies CleanRules in order to trimmed text.
func Clean(text string) string {
	cleaned := strings.TrimSpace(text)
	for _, rule := range CleanRules {
		cleaned = rule.Apply(cleaned)
	}
	return strings.TrimSpace(cleaned)
}
