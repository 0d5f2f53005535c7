package main

import (
	"fmt"
	"io"
	"strings"

	"careerpath/internal/predict"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#2F6FDE")
	colorMuted  = lipgloss.Color("#616E7C")
	colorError  = lipgloss.Color("#E74C3C")
	colorOK     = lipgloss.Color("#27AE60")
)

var styles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Error:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
	Success: lipgloss.NewStyle().Foreground(colorOK),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1),
}

const barWidth = 24

// printPrediction renders the recommendation and the ranked probabilities
func printPrediction(w io.Writer, pred predict.Prediction) {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Recommended career: " + pred.Career))
	if pred.Overridden {
		b.WriteString("\n" + styles.Muted.Render("top choice was uncertain, runner-up recommended"))
	}
	b.WriteString("\n")
	for i, cp := range pred.Probabilities {
		filled := int(cp.Probability*barWidth + 0.5)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		fmt.Fprintf(&b, "\n%d. %-22s %s %5.1f%%", i+1, cp.Career, bar, cp.Probability*100)
	}
	b.WriteString("\n\n" + styles.Muted.Render(fmt.Sprintf("persona %d · request %s", pred.Persona, pred.RequestID.Short())))
	fmt.Fprintln(w, styles.Box.Render(b.String()))
}
