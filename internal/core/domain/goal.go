package domain

import (
	"strings"
	"time"
)

const (
	completedMarker     = "\nCompleted: "
	dateCompletedMarker = "\nDateCompleted: "
	completedKey        = "Completed: "
	dateCompletedKey    = "DateCompleted: "

	// DateCompletedLayout is the timestamp format stamped on newly completed goals.
	DateCompletedLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Goal struct {
	Text          string `json:"text"`
	IsCompleted   bool   `json:"is_completed"`
	DateCompleted string `json:"date_completed,omitempty"`
}

func NewGoal(text string) Goal {
	return Goal{Text: text}
}

// Complete marks the goal done at the given instant. Already completed goals
// keep their original date.
func (g *Goal) Complete(at time.Time) bool {
	if g.IsCompleted {
		return false
	}
	g.IsCompleted = true
	g.DateCompleted = at.UTC().Format(DateCompletedLayout)
	return true
}

// EncodeGoal renders a goal as the stored string form:
//
//	<text>
//	Completed: true|false
//	DateCompleted: <date>   (only when set)
func EncodeGoal(g Goal) string {
	var b strings.Builder
	b.WriteString(g.Text)
	b.WriteString(completedMarker)
	if g.IsCompleted {
		b.WriteString("true")
	} else {
		b.WriteString("false")
	}
	if g.DateCompleted != "" {
		b.WriteString(dateCompletedMarker)
		b.WriteString(g.DateCompleted)
	}
	return b.String()
}

// DecodeGoal parses a stored goal string. The first line is always text;
// later Completed: and DateCompleted: lines are control lines wherever they
// appear, and every other line stays part of the text. Strings without a
// Completed: control line are kept whole as the text of an incomplete goal.
func DecodeGoal(raw string) Goal {
	if !strings.Contains(raw, completedMarker) {
		return Goal{Text: raw}
	}

	lines := strings.Split(raw, "\n")
	text := []string{lines[0]}
	var g Goal

	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, dateCompletedKey):
			g.DateCompleted = strings.TrimPrefix(line, dateCompletedKey)
		case strings.HasPrefix(line, completedKey):
			g.IsCompleted = strings.TrimPrefix(line, completedKey) == "true"
		default:
			text = append(text, line)
		}
	}

	g.Text = strings.Join(text, "\n")
	return g
}

func EncodeGoals(goals []Goal) []string {
	out := make([]string, 0, len(goals))
	for _, g := range goals {
		out = append(out, EncodeGoal(g))
	}
	return out
}

func DecodeGoals(raw []string) []Goal {
	out := make([]Goal, 0, len(raw))
	for _, r := range raw {
		out = append(out, DecodeGoal(r))
	}
	return out
}
