package builder

import (
	"strconv"

	"github.com/huangsam/auditview/core/format"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/core/risk"
	"github.com/huangsam/auditview/schema"
)

const (
	groupSentiment  = "舆情情感分析"
	groupMedia      = "媒体曝光分析"
	groupLitigation = "诉讼风险评估"
)

// peakRatio marks daily mention counts above this share of the maximum.
const peakRatio = 0.8

// NewOpinion returns the public-opinion audit builder.
func NewOpinion() Builder {
	return &domainBuilder{
		domain:   schema.OpinionDomain,
		noData:   OpinionNoData,
		required: "audit_analysis",
		variants: map[schema.Variant]buildFunc{schema.DefaultVariant: buildOpinion},
	}
}

func buildOpinion(root payload.Node) sectionList {
	audit := root.Get("audit_analysis")

	var out sectionList
	out.add(opinionSentiment(root.Get("sentiment_summary"))...)
	out.add(opinionMedia(root.Get("media_exposure"))...)
	out.add(
		opinionDisclosure(audit.Get("disclosure_compliance")),
		opinionLitigation(audit.Get("litigation_risk_assessment")),
		opinionReputation(audit.Get("reputation_risk")),
	)
	return out
}

func opinionSentiment(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	score := n.Get("overall_score")
	metrics := []schema.Metric{
		{
			Label: "情感评分",
			Value: format.RatioValue(score, 1),
			Badge: risk.ScoreBadge(score, format.ScoreScale),
			Note:  trendLabel(n.Get("trending").Text()),
		},
		{Label: "正面情感率", Value: format.PercentageValue(n.Get("positive_rate"), 1), Tone: schema.PositiveTone},
		{Label: "中性情感率", Value: format.PercentageValue(n.Get("neutral_rate"), 1)},
		{Label: "负面情感率", Value: format.PercentageValue(n.Get("negative_rate"), 1), Tone: schema.NegativeTone},
	}

	var compare fieldSet
	compare.text("对比历史", n.Get("historical_comparison")).
		text("行业位置", n.Get("industry_position"))
	var contextSection *schema.Section
	if len(compare) > 0 {
		contextSection = cardSection("opinion.sentiment_context", groupSentiment, "情感对比",
			[]schema.Card{{Title: "情感对比", Fields: compare.fields()}})
	}

	return []*schema.Section{
		metricSection("opinion.sentiment", groupSentiment, "情感评分", metrics),
		contextSection,
		tagSection("opinion.topics", groupSentiment, "主要话题分析",
			tags("正面关键话题", schema.PositiveTone, n.Get("key_positive_topics")),
			tags("负面关键话题", schema.NegativeTone, n.Get("key_negative_topics")),
		),
	}
}

func opinionMedia(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	overview := presentMetrics(
		schema.Metric{Label: "总提及次数", Value: format.CountValue(n.Get("total_mentions")), Note: n.Get("mentions_trend").Text()},
		schema.Metric{Label: "总覆盖人数", Value: format.CountValue(n.Get("total_reach")), Note: n.Get("reach_trend").Text()},
	)

	var platforms []schema.Metric
	for _, p := range n.Get("platform_distribution").Objects() {
		platforms = append(platforms, metric(
			format.TextOr(p.Get("platform"), format.Placeholder),
			format.PercentageValue(p.Get("percentage"), 1),
		))
	}

	return []*schema.Section{
		metricSection("opinion.media_overview", groupMedia, "媒体曝光概览", overview),
		metricSection("opinion.daily_mentions", groupMedia, "每日提及量", dailyMentions(n.Get("daily_mentions"))),
		metricSection("opinion.platforms", groupMedia, "平台分布", platforms),
	}
}

// dailyMentions labels each count by its day in the series and highlights the peaks.
// Null days keep their position so later labels do not shift.
func dailyMentions(n payload.Node) []schema.Metric {
	if !n.IsArray() {
		return nil
	}
	peak, seen := 0.0, false
	for i := range n.Len() {
		if f, ok := n.Index(i).Number(); ok && (!seen || f > peak) {
			peak, seen = f, true
		}
	}
	var out []schema.Metric
	for i := range n.Len() {
		item := n.Index(i)
		if !item.Present() {
			continue
		}
		m := metric(strconv.Itoa(i+1)+"日", format.CountValue(item))
		if f, ok := item.Number(); ok && seen && f > peak*peakRatio {
			m.Highlight = true
		}
		out = append(out, m)
	}
	return out
}

func opinionDisclosure(n payload.Node) *schema.Section {
	if !n.IsObject() {
		return nil
	}
	var fs fieldSet
	fs.list("关键发现", n.Get("key_findings")).
		list("改进领域", n.Get("improvement_areas")).
		text("建议", n.Get("recommendation"))
	return statusSection("opinion.disclosure_compliance", "", "信息披露合规性", schema.StatusBlock{
		Status: n.Get("assessment").Text(),
		Fields: fs.fields(),
	})
}

func opinionLitigation(n payload.Node) *schema.Section {
	if !n.IsObject() {
		return nil
	}
	var cards []schema.Card
	if current := n.Get("current_litigation"); current.IsObject() {
		var fs fieldSet
		fs.text("诉讼数量", current.Get("count")).
			text("潜在影响", current.Get("potential_impact")).
			text("重大案件", current.Get("material_cases")).
			text("准备金充足性", current.Get("provisions_adequacy"))
		cards = append(cards, schema.Card{Title: "当前诉讼情况", Fields: fs.fields()})
	}
	if future := n.Get("future_risks"); future.IsObject() {
		var fs fieldSet
		fs.list("风险因素", future.Get("risk_factors")).
			text("风险缓解建议", future.Get("mitigation_recommendations"))
		cards = append(cards, schema.Card{
			Title:  "未来诉讼风险",
			Badge:  risk.Badge(future.Get("overall_risk_level")),
			Fields: fs.fields(),
		})
	}
	return cardSection("opinion.litigation", groupLitigation, groupLitigation, cards)
}

func opinionReputation(n payload.Node) *schema.Section {
	if !n.IsObject() {
		return nil
	}
	brand := n.Get("brand_perception")
	var fs fieldSet
	fs.text("品牌认知 / 强度", brand.Get("strength")).
		text("品牌认知 / 稳定性", brand.Get("stability")).
		list("品牌认知 / 薄弱环节", brand.Get("vulnerabilities")).
		text("行业对比", n.Get("industry_comparison")).
		list("关键声誉驱动因素", n.Get("key_reputation_drivers")).
		text("建议", n.Get("recommendation"))
	return statusSection("opinion.reputation_risk", "", "声誉风险评估", schema.StatusBlock{
		Status: n.Get("overall_assessment").Text(),
		Fields: fs.fields(),
	})
}
