package builder

import (
	"github.com/huangsam/auditview/core/format"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/core/risk"
	"github.com/huangsam/auditview/schema"
)

// costUnit converts department cost to 万元.
const costUnit = 10000

// NewOperation returns the operation audit builder.
func NewOperation() Builder {
	return &domainBuilder{
		domain:   schema.OperationDomain,
		noData:   OperationNoData,
		required: "audit_analysis",
		variants: map[schema.Variant]buildFunc{schema.DefaultVariant: buildOperation},
	}
}

func buildOperation(root payload.Node) sectionList {
	audit := root.Get("audit_analysis")

	var out sectionList
	out.add(
		operationRisks(audit.Get("operational_risks")),
		operationControls(audit.Get("internal_control_assessment")),
		operationEfficiency(audit.Get("efficiency_analysis")),
		operationContinuity(audit.Get("business_continuity")),
		operationDepartments(root.Get("departments")),
		operationKPIs(root.Get("kpi_summary")),
	)
	return out
}

func operationRisks(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, item := range n.Objects() {
		cards = append(cards, findingCard(item, "area", func(fs *fieldSet) {
			fs.text("审计关注点", item.Get("audit_focus"))
			fs.text("潜在影响", item.Get("potential_impact"))
			fs.text("建议", item.Get("recommendation"))
		}))
	}
	return cardSection("operation.operational_risks", "", "运营风险评估", cards)
}

func operationControls(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, e := range n.Entries() {
		if !e.Value.IsObject() {
			continue
		}
		var fs fieldSet
		fs.text("控制有效性", e.Value.Get("control_effectiveness")).
			list("关键控制点", e.Value.Get("key_controls"))
		if weak := e.Value.Get("weaknesses").Strings(); len(weak) > 0 {
			fs = append(fs, schema.Field{Label: "控制弱点", Items: weak, Tone: schema.NegativeTone})
		}
		fs.text("改进建议", e.Value.Get("recommendation"))
		cards = append(cards, schema.Card{Title: controlCycleLabels.of(e.Key), Fields: fs.fields()})
	}
	return cardSection("operation.internal_control", "", "内部控制评估", cards)
}

func operationEfficiency(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, e := range n.Entries() {
		if !e.Value.IsObject() {
			continue
		}
		var fs fieldSet
		fs.text("当前值", e.Value.Get("current")).
			text("行业标准", e.Value.Get("industry_benchmark")).
			text("趋势", e.Value.Get("trend")).
			text("评估", e.Value.Get("assessment")).
			text("建议", e.Value.Get("recommendation"))
		cards = append(cards, schema.Card{Title: efficiencyLabels.of(e.Key), Fields: fs.fields()})
	}
	return cardSection("operation.efficiency", "", "效率分析", cards)
}

func operationContinuity(n payload.Node) *schema.Section {
	if !n.IsObject() {
		return nil
	}
	var fs fieldSet
	fs.list("关键依赖项", n.Get("key_dependencies"))
	if items := n.Get("mitigation_measures").Strings(); len(items) > 0 {
		fs = append(fs, schema.Field{Label: "缓解措施", Items: items, Tone: schema.PositiveTone})
	}
	if items := n.Get("improvement_areas").Strings(); len(items) > 0 {
		fs = append(fs, schema.Field{Label: "改进领域", Items: items, Tone: schema.WarningTone})
	}
	return statusSection("operation.business_continuity", "", "业务连续性评估", schema.StatusBlock{
		Status: n.Get("risk_assessment").Text(),
		Fields: fs.fields(),
	})
}

func operationDepartments(n payload.Node) *schema.Section {
	body := rows(n, func(d payload.Node) []schema.Cell {
		performance, kpi := d.Get("performance"), d.Get("kpi_achievement")
		return []schema.Cell{
			{Text: d.Get("name").Text()},
			{Text: d.Get("headcount").Text()},
			{Text: format.Percentage(performance, 1), Tone: risk.PerformanceThresholds.Tone(performance)},
			{Text: format.Scaled(d.Get("cost"), costUnit)},
			{Text: format.Percentage(kpi, 1), Tone: risk.AchievementThresholds.Tone(kpi)},
			{Badge: risk.Badge(d.Get("risk_level"))},
		}
	})
	return tableSection("operation.departments", "", "部门绩效审计",
		[]string{"部门", "人数", "绩效", "成本(万元)", "KPI达成率", "风险等级"}, body)
}

// kpiPair describes one target/actual pair of the KPI summary.
type kpiPair struct {
	name   string
	prefix string
	value  func(payload.Node) schema.MetricValue
}

var kpiPairs = []kpiPair{
	{"销售", "sales", func(n payload.Node) schema.MetricValue { return format.CountValue(n) }},
	{"生产", "production", func(n payload.Node) schema.MetricValue { return format.CountValue(n) }},
	{"效率", "efficiency", func(n payload.Node) schema.MetricValue { return format.PercentageValue(n, 1) }},
	{"缺陷率", "defect", func(n payload.Node) schema.MetricValue { return format.PercentageValue(n, 2) }},
}

func operationKPIs(n payload.Node) *schema.Section {
	if !filled(n) {
		return nil
	}
	var metrics []schema.Metric
	for _, p := range kpiPairs {
		achievement := n.Get(p.prefix + "_achievement")
		note := "达成率: " + format.Percentage(achievement, 1)
		metrics = append(metrics,
			schema.Metric{Label: p.name + "目标", Value: p.value(n.Get(p.prefix + "_target"))},
			schema.Metric{
				Label: "实际" + p.name,
				Value: p.value(n.Get(p.prefix + "_actual")),
				Tone:  risk.TargetTone(achievement),
				Note:  note,
			},
		)
	}
	return metricSection("operation.kpi_summary", "", "KPI审计总览", metrics)
}
