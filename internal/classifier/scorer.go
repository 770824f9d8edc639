// Package classifier assigns a severity label to a grievance by weighted
// keyword scoring over its normalized title and description.
package classifier

import (
	"math"
	"strings"

	"grievance-insights-go/internal/textnorm"
	"grievance-insights-go/internal/types"
)

const (
	highWeight      = 3
	mediumWeight    = 2
	lowWeight       = 1
	urgencyWeight   = 2
	urgencyBonus    = 2
	longTextWords   = 50
	longTextBonus   = 1
	highThreshold   = 3
	mediumThreshold = 2
)

// Scorer classifies grievance text against fixed keyword tables. It is
// immutable after New and safe for concurrent use.
type Scorer struct {
	keywords map[types.Severity][]string
	urgency  []string
	mode     MatchMode
}

// New builds a Scorer from cfg. The tables are copied, so later changes to
// cfg do not affect the Scorer.
func New(cfg Config) *Scorer {
	s := &Scorer{
		keywords: make(map[types.Severity][]string, len(types.Severities)),
		urgency:  cleanWords(cfg.UrgencyWords),
		mode:     cfg.MatchMode,
	}
	if !s.mode.Valid() {
		s.mode = MatchSubstring
	}
	for _, sev := range types.Severities {
		s.keywords[sev] = cleanWords(cfg.KeywordSets[sev])
	}
	return s
}

// ExtractFeatures normalizes title and description together and counts
// keyword and urgency-word hits. A nil Scorer has empty tables.
func (s *Scorer) ExtractFeatures(title, description string) types.FeatureBundle {
	if s == nil {
		s = &Scorer{mode: MatchSubstring}
	}
	text := textnorm.Normalize(title + " " + description)

	scores := make(map[types.Severity]int, len(types.Severities))
	for _, sev := range types.Severities {
		scores[sev] = s.countMatches(text, s.keywords[sev])
	}

	return types.FeatureBundle{
		Text:          text,
		KeywordScores: scores,
		TextLength:    len(strings.Fields(text)),
		UrgencyScore:  s.countMatches(text, s.urgency),
	}
}

// Classify scores the grievance and picks a label. High wins on any strong
// signal; a weak high signal still lifts the result to Medium. Confidence is
// the capped linear score rounded to two decimals, which only strips float
// noise (0.7000000000000001 is reported as 0.7).
func (s *Scorer) Classify(title, description string) types.ClassificationResult {
	f := s.ExtractFeatures(title, description)

	high := f.KeywordScores[types.SeverityHigh]*highWeight + f.UrgencyScore*urgencyWeight
	medium := f.KeywordScores[types.SeverityMedium] * mediumWeight
	low := f.KeywordScores[types.SeverityLow] * lowWeight

	if f.UrgencyScore > 0 {
		high += urgencyBonus
	}
	if f.TextLength > longTextWords {
		medium += longTextBonus
	}

	var (
		severity   types.Severity
		confidence float64
	)
	switch {
	case high >= highThreshold:
		severity = types.SeverityHigh
		confidence = math.Min(0.95, 0.6+float64(high)*0.1)
	case medium >= mediumThreshold || high >= 1:
		severity = types.SeverityMedium
		confidence = math.Min(0.9, 0.5+float64(medium)*0.1)
	default:
		severity = types.SeverityLow
		confidence = math.Min(0.85, 0.4+float64(low)*0.1)
	}

	return types.ClassificationResult{
		Severity:   severity,
		Confidence: round(confidence, 2),
		Features:   f,
		Scores: map[types.Severity]int{
			types.SeverityHigh:   high,
			types.SeverityMedium: medium,
			types.SeverityLow:    low,
		},
	}
}

func (s *Scorer) countMatches(text string, words []string) int {
	if text == "" {
		return 0
	}
	if s.mode == MatchWord {
		text = " " + text + " "
	}
	n := 0
	for _, w := range words {
		if s.mode == MatchWord {
			w = " " + w + " "
		}
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
