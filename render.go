package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fintalk/narration"
	"fintalk/pipeline"
	"fintalk/roundtable"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

var segmentLabels = map[roundtable.Segment]string{
	roundtable.SegmentModeratorIntro: "🧩 Moderator Intro:",
	roundtable.SegmentBullishView:    "💹 Bullish Investor:",
	roundtable.SegmentBearishView:    "📉 Bearish Economist:",
	roundtable.SegmentModeratorWrap:  "🎙️ Moderator Wrap-up:",
	roundtable.SegmentSummary:        "📊 Summary:",
}

func renderBlock(seg roundtable.Segment, text string) string {
	label, ok := segmentLabels[seg]
	if !ok {
		label = string(seg) + ":"
	}
	return labelStyle.Render(label) + "\n" + text + "\n"
}

func renderTurn(t roundtable.Turn) string {
	return renderBlock(t.Segment, t.Text)
}

func renderOutcome(out *pipeline.Outcome) string {
	var b strings.Builder
	b.WriteString(renderBlock(roundtable.SegmentSummary, out.Result.Summary))
	b.WriteString("\n")
	for _, p := range out.Reports {
		fmt.Fprintf(&b, "%s %s\n", okStyle.Render("✅"), p)
	}
	for _, n := range out.Narration {
		b.WriteString(renderNarration(n))
	}
	return b.String()
}

func renderNarration(n narration.Result) string {
	if n.OK() {
		return fmt.Sprintf("%s %s %s\n", okStyle.Render("✅"), n.Path, dimStyle.Render("("+n.Voice+")"))
	}
	return fmt.Sprintf("%s %s: %v\n", failStyle.Render("❌"), n.Segment, n.Err)
}
