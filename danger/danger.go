// Package danger maps snake danger levels to display attributes and scores
// the urgency of a bite report from its free-text fields.
package danger

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Rank orders danger levels for display; unknown levels rank lowest.
func Rank(level string) int {
	switch strings.ToLower(level) {
	case "extreme":
		return 4
	case "high":
		return 3
	case "medium":
		return 2
	case "low":
		return 1
	}
	return 0
}

// Badge returns the CSS badge class for a danger level.
func Badge(level string) string {
	switch strings.ToLower(level) {
	case "extreme", "high":
		return "badge-destructive"
	case "medium":
		return "badge-warning"
	default:
		return "badge-success"
	}
}

// IsEmergency reports whether the identification result should show the
// emergency first-aid panel.
func IsEmergency(level string) bool {
	return Rank(level) >= 3
}

// Assessment is the urgency estimate attached to a submitted bite report.
type Assessment struct {
	Score   int      `json:"score"`
	Level   string   `json:"level"`
	Reasons []string `json:"reasons"`
}

var severeSymptoms = []string{
	"unconscious",
	"not breathing",
	"difficulty breathing",
	"no pulse",
	"heavy bleeding",
	"bleeding from gums",
	"seizure",
	"paralysis",
	"drooping eyelids",
	"vomiting blood",
}

var concerningSymptoms = []string{
	"swelling",
	"blurred vision",
	"numbness",
	"dizziness",
	"vomiting",
	"severe pain",
	"discoloration",
}

// AssessBite estimates how urgently a reported bite needs escalation from the
// symptoms text, the victim's age, and how long ago the bite happened.
func AssessBite(symptoms, age, timeOfBite string) Assessment {
	var score float64
	var reasons []string

	if kw, ok := findKeyword(symptoms, severeSymptoms...); ok {
		score += 55
		reasons = append(reasons, "severe symptom reported: "+kw)
	} else if kw, ok := findKeyword(symptoms, concerningSymptoms...); ok {
		score += 30
		reasons = append(reasons, "concerning symptom reported: "+kw)
	}

	if years := parseAge(age); years > 0 && (years < 6 || years >= 70) {
		score += 15
		reasons = append(reasons, "age at risk: "+strconv.Itoa(years))
	}

	if t, ok := parseBiteTime(timeOfBite); ok {
		minutes := time.Since(t).Minutes()
		switch {
		case minutes >= 0 && minutes <= 60:
			score += 20
			reasons = append(reasons, "bite within the last hour")
		case minutes > 6*60:
			score += 10
			reasons = append(reasons, "bite more than 6 hours ago without treatment")
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := "low"
	switch {
	case score >= 70:
		level = "critical"
	case score >= 45:
		level = "high"
	case score >= 25:
		level = "medium"
	}

	return Assessment{
		Score:   int(math.Round(score)),
		Level:   level,
		Reasons: reasons,
	}
}

func parseAge(val string) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}

	builder := strings.Builder{}
	for _, r := range val {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		} else if builder.Len() > 0 {
			break
		}
	}
	if builder.Len() == 0 {
		return 0
	}

	age, err := strconv.Atoi(builder.String())
	if err != nil {
		return 0
	}
	return age
}

// parseBiteTime accepts the loose formats users type into the time field.
func parseBiteTime(val string) (time.Time, bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "15:04"} {
		if t, err := time.Parse(layout, val); err == nil {
			if layout == "15:04" {
				now := time.Now()
				t = time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
			}
			return t, true
		}
	}
	return time.Time{}, false
}

func findKeyword(text string, keywords ...string) (string, bool) {
	if text == "" {
		return "", false
	}
	lowerText := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}
