// Package observability provides formatted output utilities for the CLI text mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/success-predictor/internal/prediction"
	"github.com/jonathan/success-predictor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for text mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content. Lines longer than the
// box are word-wrapped.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(wrapped, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPrediction outputs a human-readable summary of a prediction.
func (p *Printer) PrintPrediction(title string, result *types.PredictionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Success probability: %d%%\n", result.SuccessProbability))
	sb.WriteString(fmt.Sprintf("Category:            %s\n", result.Category))
	sb.WriteString("\n")

	writeList(&sb, "Strengths", result.Strengths)
	writeList(&sb, "Weaknesses", result.Weaknesses)

	if len(result.Recommendations) > 0 {
		sb.WriteString("Recommendations:\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("  [%s] %s (%s)\n", rec.Priority, rec.Title, rec.Timeframe))
			sb.WriteString(fmt.Sprintf("    %s\n", rec.Description))
		}
		sb.WriteString("\n")
	}

	if len(result.Resources) > 0 {
		sb.WriteString("Resources:\n")
		for _, res := range result.Resources {
			sb.WriteString(fmt.Sprintf("  • %s (%s) %s\n", res.Title, res.Type, res.URL))
		}
		sb.WriteString("\n")
	}

	if len(result.Schedule.Daily) > 0 {
		writeList(&sb, "Daily schedule", result.Schedule.Daily)
	}

	sb.WriteString(result.MotivationalMessage)
	if result.RealityCheck != "" {
		sb.WriteString("\n\nReality check:\n")
		sb.WriteString(result.RealityCheck)
	}

	p.printBox(title, sb.String())
}

// PrintBreakdown outputs each factor's contribution to the score.
func (p *Printer) PrintBreakdown(b *prediction.Breakdown) {
	if b == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-20s %-18s %8.1f\n", "base", "", b.Base))
	for _, c := range b.Contributions {
		sb.WriteString(fmt.Sprintf("%-20s %-18s %+8.1f\n", c.Factor, c.Rule, c.Points))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Raw score:     %.1f\n", b.RawScore))
	sb.WriteString(fmt.Sprintf("Final score:   %d (%s)", b.Score, b.Category))

	p.printBox("SCORE BREAKDOWN", sb.String())
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// wrap splits s into lines of at most width runes, breaking on spaces where possible.
func wrap(s string, width int) []string {
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}

	indent := s[:len(s)-len(strings.TrimLeft(s, " "))]
	if len(indent) > width/2 {
		indent = ""
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > width-len(indent) {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			r := []rune(word)
			cut := width - len(indent)
			lines = append(lines, indent+string(r[:cut]))
			word = string(r[cut:])
		}
		switch {
		case line == "":
			line = indent + word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = indent + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
