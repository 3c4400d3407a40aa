package format

import (
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/schema"
)

func raw(x any) any {
	return payload.Wrap(x).Raw()
}

// PercentageValue is Percentage with its raw input kept.
func PercentageValue(x any, decimals int) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.FractionKind, Text: Percentage(x, decimals)}
}

// PointsValue is Points with its raw input kept.
func PointsValue(x any, decimals int) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.PercentageKind, Text: Points(x, decimals)}
}

// RatioValue is Ratio with its raw input kept.
func RatioValue(x any, decimals int) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.RatioKind, Text: Ratio(x, decimals)}
}

// CountValue is Count with its raw input kept.
func CountValue(x any) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.CountKind, Text: Count(x)}
}

// CurrencyValue is Currency with its raw input kept.
func CurrencyValue(x any) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.CurrencyKind, Text: Currency(x)}
}

// RankValue is Rank with its raw input kept.
func RankValue(x any) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.RankKind, Text: Rank(x)}
}

// ScoreValue is Score with its raw input kept.
func ScoreValue(x any, scale float64, decimals int) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.ScoreKind, Text: Score(x, scale, decimals)}
}

// FreeformValue keeps a string field as-is.
func FreeformValue(x any) schema.MetricValue {
	return schema.MetricValue{Raw: raw(x), Kind: schema.FreeformKind, Text: TextOr(x, Placeholder)}
}

// InferValue classifies a value of unknown unit.
func InferValue(x any) schema.MetricValue {
	f, ok := number(x)
	switch {
	case ok && f > 0 && f < 100:
		return schema.MetricValue{Raw: f, Kind: schema.PercentageKind, Text: fixed(f, 1) + "%"}
	case ok:
		return schema.MetricValue{Raw: f, Kind: schema.CountKind, Text: grouped(f)}
	default:
		return FreeformValue(x)
	}
}
