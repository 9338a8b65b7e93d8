// Package insight derives rule-based observations from recent activity and
// optionally rephrases them through a local Ollama model. The rules are the
// source of truth; the model only rewords, and every model failure falls
// back to the rule text.
package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/quietdesk/cockpit/internal/gatekeeper"
	"github.com/quietdesk/cockpit/internal/store"
)

// Type classifies an insight.
type Type int

const (
	ProductivityPattern Type = iota
	Suggestion
	Anomaly
	Achievement
)

// Insight is an observation about recent working patterns.
type Insight struct {
	Title       string
	Description string
	Confidence  float64
	Type        Type
}

// Rephraser rewords a line of text. Satisfied by *ollama.Client via a thin
// adapter in the command layer.
type Rephraser interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config controls insight generation.
type Config struct {
	Enabled bool
}

// Service generates insights. A disabled service returns nothing.
type Service struct {
	config    Config
	rephraser Rephraser
}

// NewService creates an insight service. rephraser may be nil.
func NewService(config Config, rephraser Rephraser) *Service {
	return &Service{config: config, rephraser: rephraser}
}

// FromSnapshots derives insights from recent snapshots.
func (s *Service) FromSnapshots(snapshots []store.Snapshot) []Insight {
	if !s.config.Enabled {
		return nil
	}

	var insights []Insight
	if in := detectFocusPattern(snapshots); in != nil {
		insights = append(insights, s.polish(*in))
	}
	if in := detectMilestone(snapshots); in != nil {
		insights = append(insights, s.polish(*in))
	}
	return insights
}

// SummarizeDay buckets the day's total event count into a one-line
// description: >100, (50,100], (20,50], and everything below.
func (s *Service) SummarizeDay(summary gatekeeper.Summary) *Insight {
	if !s.config.Enabled || summary.TotalEvents == 0 {
		return nil
	}

	var description string
	switch {
	case summary.TotalEvents > 100:
		description = "Very high activity today! Great productivity."
	case summary.TotalEvents > 50:
		description = "Solid day of work with good activity levels."
	case summary.TotalEvents > 20:
		description = "Moderate activity today."
	default:
		description = "Light activity day. Consider if this was intentional."
	}

	in := s.polish(Insight{
		Title:       "Daily Activity Summary",
		Description: description,
		Confidence:  0.8,
		Type:        ProductivityPattern,
	})
	return &in
}

// Suggestions produces free-form suggestions from the session shape.
func (s *Service) Suggestions(snapshots []store.Snapshot, now time.Time) []string {
	if !s.config.Enabled {
		return nil
	}

	var suggestions []string

	if now.Local().Hour() >= 17 {
		suggestions = append(suggestions, "Consider wrapping up and reviewing today's work.")
	}
	if len(snapshots) > 50 {
		suggestions = append(suggestions, "High activity session! Take a break when ready.")
	}

	dirs := make(map[string]struct{})
	for _, snap := range snapshots {
		if snap.ActiveDirectory != "" {
			dirs[snap.ActiveDirectory] = struct{}{}
		}
	}
	if len(dirs) > 5 {
		suggestions = append(suggestions,
			"You've touched many different areas. Consider focusing on completing one task fully.")
	}

	return suggestions
}

// detectFocusPattern fires when more than half of at least 10 snapshots
// share the newest snapshot's directory.
func detectFocusPattern(snapshots []store.Snapshot) *Insight {
	if len(snapshots) < 10 {
		return nil
	}

	dir := snapshots[0].ActiveDirectory
	if dir == "" {
		return nil
	}

	same := 0
	for _, snap := range snapshots {
		if snap.ActiveDirectory == dir {
			same++
		}
	}
	if same <= len(snapshots)/2 {
		return nil
	}

	return &Insight{
		Title:       "Focused Work Session",
		Description: fmt.Sprintf("You've been consistently working in %s. Great focus!", dir),
		Confidence:  0.7,
		Type:        ProductivityPattern,
	}
}

// detectMilestone fires at 100 captures in the window.
func detectMilestone(snapshots []store.Snapshot) *Insight {
	if len(snapshots) < 100 {
		return nil
	}
	return &Insight{
		Title:       "Session Milestone",
		Description: "100+ context captures in this session. You're on a roll!",
		Confidence:  0.9,
		Type:        Achievement,
	}
}

// polish optionally rewords the description through the configured model.
func (s *Service) polish(in Insight) Insight {
	if s.rephraser == nil {
		return in
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Rephrase the following productivity observation in one friendly sentence, keeping every fact: %q",
		in.Description)
	text, err := s.rephraser.Generate(ctx, prompt)
	if err != nil || text == "" {
		return in
	}
	in.Description = text
	return in
}
