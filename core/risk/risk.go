// Package risk maps risk-level labels and score thresholds to severities, colors and tones.
package risk

import (
	"strings"

	"github.com/huangsam/auditview/core/format"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/schema"
)

// Risk-level labels.
const (
	High       = "高"
	MediumHigh = "中高"
	Medium     = "中等"
	MediumAlt  = "中"
	Low        = "低"
	None       = "无"
)

// suffix is the word "risk" that producers sometimes append to a level.
const suffix = "风险"

// Display colors.
const (
	ColorHigh       = "#ff5c5c"
	ColorMediumHigh = "#ff8c5c"
	ColorMedium     = "#ffd666"
	ColorLow        = "#4be1a0"
)

// Tone colors used for achievement and performance cells.
const (
	ColorPositive = "#52c41a"
	ColorWarning  = "#fa8c16"
	ColorNegative = "#f5222d"
)

type level struct {
	severity int
	color    string
}

var levels = map[string]level{
	High:       {5, ColorHigh},
	MediumHigh: {4, ColorMediumHigh},
	Medium:     {3, ColorMedium},
	MediumAlt:  {3, ColorMedium},
	Low:        {2, ColorLow},
	None:       {1, ColorLow},
}

// Normalize trims whitespace and a trailing "风险" from a label.
func Normalize(label string) string {
	label = strings.TrimSpace(label)
	return strings.TrimSpace(strings.TrimSuffix(label, suffix))
}

// Severity ranks a label: 高 > 中高 > 中等 = 中 > 低 > 无. Unknown labels rank 0.
func Severity(label string) int {
	return levels[Normalize(label)].severity
}

// Known reports whether the label belongs to the fixed vocabulary.
func Known(label string) bool {
	_, ok := levels[Normalize(label)]
	return ok
}

// Color returns the display color of a label. Unknown labels use the medium color.
func Color(label string) string {
	if l, ok := levels[Normalize(label)]; ok {
		return l.color
	}
	return ColorMedium
}

// Badge builds a badge from a label node or string. It returns nil when the label is empty.
func Badge(x any) *schema.Badge {
	text := payload.Wrap(x).Text()
	if text == "" {
		return nil
	}
	norm := Normalize(text)
	return &schema.Badge{
		Label:    text,
		Level:    norm,
		Color:    Color(norm),
		Severity: Severity(norm),
	}
}

// StrippedBadge is Badge with the label itself shown without the "风险" suffix.
func StrippedBadge(x any) *schema.Badge {
	b := Badge(x)
	if b != nil {
		b.Label = b.Level
	}
	return b
}

// ScoreTone buckets a score against its maximum: below 40% is negative,
// below 70% is a warning, anything else is positive.
func ScoreTone(score, maxScore float64) schema.Tone {
	switch {
	case score < maxScore*0.4:
		return schema.NegativeTone
	case score < maxScore*0.7:
		return schema.WarningTone
	default:
		return schema.PositiveTone
	}
}

// ScoreBadge renders a score with one decimal, colored by ScoreTone.
func ScoreBadge(x any, maxScore float64) *schema.Badge {
	f, ok := payload.Float(x)
	if !ok {
		return nil
	}
	tone := ScoreTone(f, maxScore)
	return &schema.Badge{
		Label: format.Ratio(f, 1),
		Level: string(tone),
		Color: scoreColors[tone],
	}
}

var scoreColors = map[schema.Tone]string{
	schema.NegativeTone: ColorHigh,
	schema.WarningTone:  ColorMedium,
	schema.PositiveTone: ColorLow,
}

// Threshold pairs used with AchievementTone.
var (
	// PerformanceThresholds applies to department performance scores.
	PerformanceThresholds = Thresholds{Good: 0.95, Fair: 0.9}

	// AchievementThresholds applies to KPI achievement ratios.
	AchievementThresholds = Thresholds{Good: 1.0, Fair: 0.9}
)

// Thresholds splits a ratio into positive, warning and negative tones.
type Thresholds struct {
	Good float64
	Fair float64
}

// Tone buckets a value. Missing values are neutral.
func (t Thresholds) Tone(x any) schema.Tone {
	f, ok := payload.Float(x)
	switch {
	case !ok:
		return schema.NeutralTone
	case f >= t.Good:
		return schema.PositiveTone
	case f >= t.Fair:
		return schema.WarningTone
	default:
		return schema.NegativeTone
	}
}

// TargetTone is positive when a ratio reaches 1 and negative otherwise.
func TargetTone(x any) schema.Tone {
	f, ok := payload.Float(x)
	switch {
	case !ok:
		return schema.NeutralTone
	case f >= 1:
		return schema.PositiveTone
	default:
		return schema.NegativeTone
	}
}

// ToneColor returns the display color of a tone, or "" for neutral.
func ToneColor(t schema.Tone) string {
	switch t {
	case schema.PositiveTone:
		return ColorPositive
	case schema.WarningTone:
		return ColorWarning
	case schema.NegativeTone:
		return ColorNegative
	}
	return ""
}
