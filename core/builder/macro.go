package builder

import (
	"github.com/huangsam/auditview/core/format"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/schema"
)

const (
	groupIndustry         = "行业指标概览"
	groupMacroRisk        = "宏观经济风险评估"
	groupMacroGoing       = "持续经营的宏观因素"
	groupPolicy           = "政策和监管环境"
	groupIndustrySpecific = "行业特定分析"
)

var indicatorColumns = []string{"指标", "数值", "趋势", "影响"}

// NewMacro returns the macroeconomic audit builder. The default variant reads
// industry indicators and regional comparisons, the alternate one reads
// economic indicators and industry conditions.
func NewMacro() Builder {
	return &domainBuilder{
		domain: schema.MacroDomain,
		noData: MacroNoData,
		variants: map[schema.Variant]buildFunc{
			schema.DefaultVariant:   buildMacroIndustry,
			schema.AlternateVariant: buildMacroEconomic,
		},
	}
}

func buildMacroEconomic(root payload.Node) sectionList {
	audit := root.Get("audit_analysis")

	var out sectionList
	out.add(
		indicatorTable("macro.economic_indicators", "经济指标概览", root.Get("economic_indicators")),
		indicatorTable("macro.industry_conditions", "行业状况", root.Get("industry_conditions")),
		macroRiskExposure(audit.Get("macro_risk_exposure")),
		macroScenarios(audit.Get("economic_scenario_analysis")),
	)
	return out
}

// indicatorTable renders an object of {value, trend, impact} entries.
func indicatorTable(key, title string, n payload.Node) *schema.Section {
	var body [][]schema.Cell
	for _, e := range n.Entries() {
		if !e.Value.IsObject() {
			continue
		}
		body = append(body, cells(
			indicatorLabels.of(e.Key),
			format.InferValue(e.Value.Get("value")).Text,
			e.Value.Get("trend").Text(),
			e.Value.Get("impact").Text(),
		))
	}
	return tableSection(key, "", title, indicatorColumns, body)
}

func macroRiskExposure(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, e := range n.Entries() {
		if !e.Value.IsObject() {
			continue
		}
		var fs fieldSet
		fs.text("评估", e.Value.Get("assessment")).
			text("影响", e.Value.Get("implications")).
			text("审计重点", e.Value.Get("audit_focus"))
		cards = append(cards, schema.Card{Title: indicatorLabels.of(e.Key), Fields: fs.fields()})
	}
	return cardSection("macro.risk_exposure", "", "宏观风险评估", cards)
}

func macroScenarios(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, e := range n.Entries() {
		if !e.Value.IsObject() {
			continue
		}
		var fs fieldSet
		fs.text("描述", e.Value.Get("description")).
			text("影响", e.Value.Get("impact")).
			list("监控指标", e.Value.Get("key_indicators_to_monitor"))
		cards = append(cards, schema.Card{
			Title:  scenarioLabels.of(e.Key) + " (" + format.Percentage(e.Value.Get("probability"), 0) + ")",
			Fields: fs.fields(),
		})
	}
	return cardSection("macro.scenarios", "", "经济情景分析", cards)
}

func buildMacroIndustry(root payload.Node) sectionList {
	audit := root.Get("audit_analysis")

	var out sectionList
	out.add(macroIndustry(root.Get("industry_indicators"))...)
	out.add(macroRegions(root.Get("regional_comparison")))
	out.add(macroRiskAssessment(audit.Get("macroeconomic_risk_assessment")))
	out.add(macroIndustryAnalysis(audit.Get("industry_specific_analysis"))...)
	out.add(
		macroForeignExchange(audit.Get("foreign_exchange_impact")),
		macroForecasts(root.Get("forecast_scenarios")),
	)
	out.add(macroGoingConcern(audit.Get("going_concern_macro_factors"))...)
	out.add(macroPolicy(audit.Get("policy_and_regulatory_environment"))...)
	return out
}

func macroIndustry(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	metrics := []schema.Metric{
		metric("市场规模", format.CurrencyValue(n.Get("market_size"))),
		metric("市场增长率", format.PercentageValue(n.Get("market_growth"), 1)),
		metric("竞争强度", tenPoint(n.Get("competitive_intensity"))),
		metric("进入壁垒", tenPoint(n.Get("entry_barriers"))),
		metric("技术采用率", tenPoint(n.Get("technology_adoption"))),
		metric("行业生命周期", format.FreeformValue(n.Get("industry_lifecycle"))),
	}
	return []*schema.Section{
		metricSection("macro.industry_indicators", groupIndustry, "行业关键指标", metrics),
		tagSection("macro.growth_segments", groupIndustry, "关键增长领域",
			tags("关键增长领域", schema.NeutralTone, n.Get("key_growth_segments"))),
	}
}

// tenPoint renders a [0, 1] index on a ten-point scale.
func tenPoint(n payload.Node) schema.MetricValue {
	return format.ScoreValue(n, format.ScoreScale, 1)
}

func macroRegions(n payload.Node) *schema.Section {
	body := rows(n, func(r payload.Node) []schema.Cell {
		return cells(
			r.Get("region").Text(),
			format.Percentage(r.Get("gdp_growth"), 1),
			format.Percentage(r.Get("industry_concentration"), 0),
			tenPoint(r.Get("market_potential")).Text,
			r.Get("competitive_position").Text(),
			r.Get("policy_environment").Text(),
		)
	})
	return tableSection("macro.regional_comparison", "", "区域比较分析",
		[]string{"区域", "GDP增长", "行业集中度", "市场潜力", "竞争地位", "政策环境"}, body)
}

func macroRiskAssessment(n payload.Node) *schema.Section {
	if !n.IsObject() {
		return nil
	}
	var cards []schema.Card
	if cycle := n.Get("economic_cycle_position"); cycle.IsObject() {
		var fs fieldSet
		fs.text("当前阶段", cycle.Get("current_phase")).
			text("对行业影响", cycle.Get("impact_on_industry")).
			list("关键指标", cycle.Get("key_indicators")).
			text("审计含义", cycle.Get("audit_implication"))
		cards = append(cards, schema.Card{Title: "经济周期位置", Fields: fs.fields()})
	}
	if monetary := n.Get("monetary_policy_impact"); monetary.IsObject() {
		var fs fieldSet
		fs.text("当前政策立场", monetary.Get("current_policy_stance")).
			text("利率趋势", monetary.Get("interest_rate_trend")).
			text("流动性状况", monetary.Get("liquidity_condition")).
			text("审计含义", monetary.Get("audit_implication"))
		cards = append(cards, schema.Card{Title: "货币政策影响", Fields: fs.fields()})
	}
	if fiscal := n.Get("fiscal_policy_impact"); fiscal.IsObject() {
		var fs fieldSet
		fs.text("当前政策立场", fiscal.Get("current_policy_stance")).
			list("关键举措", fiscal.Get("key_initiatives")).
			list("受益行业", fiscal.Get("sector_benefits")).
			text("审计含义", fiscal.Get("audit_implication"))
		cards = append(cards, schema.Card{Title: "财政政策影响", Fields: fs.fields()})
	}
	if shifts := n.Get("industry_regulation_shifts"); shifts.IsObject() {
		var fs fieldSet
		fs.text("趋势", shifts.Get("trend")).
			list("关键领域", shifts.Get("key_areas")).
			text("合规成本影响", shifts.Get("compliance_cost_impact")).
			text("审计含义", shifts.Get("audit_implication"))
		cards = append(cards, schema.Card{Title: "行业监管变化", Fields: fs.fields()})
	}
	return cardSection("macro.risk_assessment", groupMacroRisk, groupMacroRisk, cards)
}

// macroIndustryAnalysis renders the free-form industry analysis: scalar
// fields as one card and every list of records as its own table.
func macroIndustryAnalysis(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	var out []*schema.Section
	if fields := genericFields(n, fieldLabels); len(fields) > 0 {
		out = append(out, cardSection("macro.industry_analysis", groupIndustrySpecific, groupIndustrySpecific,
			[]schema.Card{{Title: groupIndustrySpecific, Fields: fields}}))
	}
	return append(out, genericTables(n, "macro.industry_analysis", groupIndustrySpecific, fieldLabels)...)
}

func macroForeignExchange(n payload.Node) *schema.Section {
	if !filled(n) {
		return nil
	}
	return statusSection("macro.foreign_exchange", "", "汇率影响", schema.StatusBlock{
		Status: n.Get("exposure_level").Text(),
		Fields: genericFields(n, fieldLabels),
	})
}

func macroForecasts(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, s := range n.Objects() {
		title := scenarioLabels.of(format.TextOr(s.Get("scenario"), format.Placeholder))
		if p := s.Get("probability"); p.Present() {
			title += " (" + format.Percentage(p, 0) + ")"
		}
		var fs fieldSet
		if g := s.Get("gdp_growth"); g.Present() {
			fs.value("GDP增长", format.Points(g, 1))
		}
		if g := s.Get("industry_growth"); g.Present() {
			fs.value("行业增长", format.Points(g, 1))
		}
		fs.list("关键假设", s.Get("key_assumptions")).
			text("影响描述", s.Get("impact_description"))
		cards = append(cards, schema.Card{Title: title, Fields: fs.fields()})
	}
	return cardSection("macro.forecast_scenarios", "", "预测情景", cards)
}

func macroGoingConcern(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	var fs fieldSet
	fs.text("行业前景", n.Get("industry_outlook")).
		list("关键依赖因素", n.Get("critical_dependencies")).
		text("审计含义", n.Get("audit_implication"))

	stress := rows(n.Get("stress_test_scenarios"), func(s payload.Node) []schema.Cell {
		return cells(
			s.Get("scenario").Text(),
			s.Get("impact").Text(),
			s.Get("mitigating_factors").Text(),
		)
	})
	return []*schema.Section{
		statusSection("macro.going_concern", groupMacroGoing, groupMacroGoing, schema.StatusBlock{Fields: fs.fields()}),
		tableSection("macro.stress_tests", groupMacroGoing, "压力测试情景",
			[]string{"情景", "影响", "缓解因素"}, stress),
	}
}

func macroPolicy(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	recent := rows(n.Get("key_recent_changes"), func(c payload.Node) []schema.Cell {
		return cells(
			c.Get("policy").Text(),
			c.Get("effective_date").Text(),
			c.Get("compliance_status").Text(),
			c.Get("business_impact").Text(),
		)
	})
	pending := rows(n.Get("pending_legislation"), func(l payload.Node) []schema.Cell {
		return cells(
			l.Get("policy").Text(),
			l.Get("expected_date").Text(),
			l.Get("potential_impact").Text(),
			l.Get("preparedness").Text(),
		)
	})
	var implication *schema.Section
	if text := n.Get("audit_implication").Text(); text != "" {
		implication = statusSection("macro.policy_implication", groupPolicy, "审计含义", schema.StatusBlock{Message: text})
	}
	return []*schema.Section{
		tableSection("macro.recent_policy_changes", groupPolicy, "近期政策变化",
			[]string{"政策", "生效日期", "合规状态", "业务影响"}, recent),
		tableSection("macro.pending_legislation", groupPolicy, "待定立法",
			[]string{"政策", "预期日期", "潜在影响", "准备状态"}, pending),
		implication,
	}
}
