package builder

import (
	"embed"
	"strings"
	"testing"

	"github.com/huangsam/auditview/core/classify"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/core/risk"
	"github.com/huangsam/auditview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/*.json
var fixtures embed.FS

func load(t *testing.T, name string) payload.Node {
	t.Helper()
	data, err := fixtures.ReadFile("testdata/" + name)
	require.NoError(t, err)
	n, err := payload.ParseNode(data)
	require.NoError(t, err)
	return n
}

func parse(t *testing.T, doc string) payload.Node {
	t.Helper()
	n, err := payload.ParseNode([]byte(doc))
	require.NoError(t, err)
	return n
}

// build classifies and builds the node with the builder of its domain.
func build(t *testing.T, b Builder, n payload.Node) schema.ViewModel {
	t.Helper()
	vm, err := b.Build(n, classify.Classify(b.Domain(), n))
	require.NoError(t, err)
	return vm
}

func section(t *testing.T, vm schema.ViewModel, key string) schema.Section {
	t.Helper()
	s, ok := vm.Section(key)
	require.True(t, ok, "missing section %s in %v", key, vm.SectionKeys())
	return s
}

func metricTexts(s schema.Section) map[string]string {
	out := map[string]string{}
	for _, m := range s.Metrics {
		out[m.Label] = m.Value.Text
	}
	return out
}

func rowTexts(row []schema.Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Text
	}
	return out
}

func TestFinanceBuilder(t *testing.T) {
	vm := build(t, NewFinance(), load(t, "finance_aura.json"))

	assert.Equal(t, schema.BuiltState, vm.State)
	assert.Equal(t, "财务审计分析", vm.Title)
	assert.Equal(t, []string{
		"finance.key_risk_areas",
		"finance.going_concern",
		"finance.internal_control",
		"finance.significant_deficiencies",
		"finance.trends",
		"finance.unusual_transactions",
		"finance.profitability",
		"finance.liquidity",
	}, vm.SectionKeys(), "empty efficiency object is omitted")

	risks := section(t, vm, "finance.key_risk_areas")
	require.Len(t, risks.Cards, 2)
	assert.Equal(t, "收入确认", risks.Cards[0].Title)
	assert.Equal(t, risk.ColorHigh, risks.Cards[0].Badge.Color)
	assert.Len(t, risks.Cards[0].Fields, 4)
	assert.Equal(t, []schema.Field{{Label: "描述", Value: "存货跌价准备计提不足"}}, risks.Cards[1].Fields)

	going := section(t, vm, "finance.going_concern")
	assert.Equal(t, schema.StatusBlockSection, going.Kind)
	assert.Equal(t, "无重大疑虑", going.Status.Status)

	deficiencies := section(t, vm, "finance.significant_deficiencies")
	assert.Equal(t, []string{"采购审批", "大额采购缺少复核", "中等", "增设双人审批"}, rowTexts(deficiencies.Table.Rows[0]))

	assert.Equal(t, map[string]string{
		"毛利率":   "35.2%",
		"营业利润率": "18.1%",
		"净利率":   "12.3%",
		"ROE":   "15.7%",
	}, metricTexts(section(t, vm, "finance.profitability")))
	assert.Equal(t, map[string]string{
		"流动比率":  "1.82",
		"速动比率":  "1.21",
		"资产负债率": "45.6%",
		"利息覆盖率": "8.3",
	}, metricTexts(section(t, vm, "finance.liquidity")))
}

func TestFinanceBuilderPartialRatios(t *testing.T) {
	vm := build(t, NewFinance(), parse(t, `{
		"audit_analysis": {"key_risk_areas": "not a list"},
		"financial_ratios": {"profitability": {"gross_margin": 0.4}}
	}`))

	assert.Equal(t, []string{"finance.profitability"}, vm.SectionKeys())
	assert.Equal(t, map[string]string{
		"毛利率":   "40.0%",
		"营业利润率": "N/A",
		"净利率":   "N/A",
		"ROE":   "N/A",
	}, metricTexts(vm.Sections[0]))
}

func TestOperationBuilder(t *testing.T) {
	vm := build(t, NewOperation(), load(t, "operation_aura.json"))

	assert.Equal(t, schema.BuiltState, vm.State)
	assert.Equal(t, []string{
		"operation.operational_risks",
		"operation.internal_control",
		"operation.efficiency",
		"operation.business_continuity",
		"operation.departments",
		"operation.kpi_summary",
	}, vm.SectionKeys())

	controls := section(t, vm, "operation.internal_control")
	require.Len(t, controls.Cards, 3)
	assert.Equal(t, "采购循环", controls.Cards[0].Title)
	assert.Equal(t, "库存循环", controls.Cards[1].Title)
	assert.Equal(t, "custom_cycle", controls.Cards[2].Title, "unknown cycle keys pass through")
	assert.Len(t, controls.Cards[0].Fields, 3, "empty weaknesses are skipped")
	weak := controls.Cards[1].Fields[2]
	assert.Equal(t, "控制弱点", weak.Label)
	assert.Equal(t, schema.NegativeTone, weak.Tone)

	assert.Equal(t, "产能利用率", section(t, vm, "operation.efficiency").Cards[0].Title)

	continuity := section(t, vm, "operation.business_continuity")
	assert.Equal(t, "中等", continuity.Status.Status)
	require.Len(t, continuity.Status.Fields, 3)
	assert.Equal(t, schema.PositiveTone, continuity.Status.Fields[1].Tone)
	assert.Equal(t, schema.WarningTone, continuity.Status.Fields[2].Tone)

	departments := section(t, vm, "operation.departments").Table
	assert.Equal(t, []string{"部门", "人数", "绩效", "成本(万元)", "KPI达成率", "风险等级"}, departments.Columns)
	require.Len(t, departments.Rows, 2)
	assert.Equal(t, []string{"生产部", "320", "96.2%", "1,235", "104.3%", ""}, rowTexts(departments.Rows[0]))
	assert.Equal(t, schema.PositiveTone, departments.Rows[0][2].Tone)
	assert.Equal(t, "低", departments.Rows[0][5].Badge.Label)
	assert.Equal(t, []string{"销售部", "85", "91.2%", "560", "87.4%", ""}, rowTexts(departments.Rows[1]))
	assert.Equal(t, schema.WarningTone, departments.Rows[1][2].Tone)
	assert.Equal(t, schema.NegativeTone, departments.Rows[1][4].Tone)

	kpi := section(t, vm, "operation.kpi_summary")
	require.Len(t, kpi.Metrics, 8)
	assert.Equal(t, map[string]string{
		"销售目标":  "120,000,000",
		"实际销售":  "126,500,000",
		"生产目标":  "50,000",
		"实际生产":  "48,200",
		"效率目标":  "85.0%",
		"实际效率":  "87.2%",
		"缺陷率目标": "1.20%",
		"实际缺陷率": "1.53%",
	}, metricTexts(kpi))
	assert.Equal(t, "达成率: 105.4%", kpi.Metrics[1].Note)
	assert.Equal(t, schema.PositiveTone, kpi.Metrics[1].Tone)
	assert.Equal(t, schema.NegativeTone, kpi.Metrics[3].Tone)
	assert.Equal(t, "达成率: 78.4%", kpi.Metrics[7].Note)
}

func TestOperationEmptyDepartments(t *testing.T) {
	root := load(t, "operation_aura.json")
	obj, ok := root.Raw().(*payload.Object)
	require.True(t, ok)
	obj.Set("departments", []any{})

	vm := build(t, NewOperation(), root)
	_, found := vm.Section("operation.departments")
	assert.False(t, found)
	assert.Len(t, vm.Sections, 5)
}

func TestOperationHugeDepartmentCost(t *testing.T) {
	root := load(t, "operation_aura.json")
	obj, ok := root.Raw().(*payload.Object)
	require.True(t, ok)
	obj.Set("departments", parse(t, `[{"name": "A", "cost": 1e300}, {"name": "B", "cost": -1e300}]`).Raw())

	body := section(t, build(t, NewOperation(), root), "operation.departments").Table.Rows
	require.Len(t, body, 2)
	assert.NotContains(t, body[0][3].Text, "-")
	assert.NotContains(t, body[0][3].Text, "9,223,372,036,854,775,808")
	assert.True(t, strings.HasPrefix(body[1][3].Text, "-"))
}

func TestOpinionBuilder(t *testing.T) {
	vm := build(t, NewOpinion(), load(t, "opinion_aura.json"))

	assert.Equal(t, []string{
		"opinion.sentiment",
		"opinion.sentiment_context",
		"opinion.topics",
		"opinion.media_overview",
		"opinion.daily_mentions",
		"opinion.platforms",
		"opinion.disclosure_compliance",
		"opinion.litigation",
	}, vm.SectionKeys(), "missing reputation risk is omitted")

	sentiment := section(t, vm, "opinion.sentiment")
	score := sentiment.Metrics[0]
	assert.Equal(t, "7.3", score.Value.Text)
	require.NotNil(t, score.Badge)
	assert.Equal(t, risk.ColorLow, score.Badge.Color)
	assert.Equal(t, "↗️ 上升", score.Note)
	assert.Equal(t, "62.3%", sentiment.Metrics[1].Value.Text)

	topics := section(t, vm, "opinion.topics")
	require.Len(t, topics.Tags, 2)
	assert.Equal(t, []string{"售后服务"}, topics.Tags[1].Tags)

	overview := section(t, vm, "opinion.media_overview")
	assert.Equal(t, map[string]string{"总提及次数": "15,832", "总覆盖人数": "2,450,000"}, metricTexts(overview))
	assert.Equal(t, "+12%", overview.Metrics[0].Note)

	daily := section(t, vm, "opinion.daily_mentions").Metrics
	require.Len(t, daily, 5)
	var peaks []string
	for _, m := range daily {
		if m.Highlight {
			peaks = append(peaks, m.Label)
		}
	}
	assert.Equal(t, []string{"3日", "4日"}, peaks)

	assert.Equal(t, map[string]string{"微博": "41.2%", "新闻网站": "31.8%"}, metricTexts(section(t, vm, "opinion.platforms")))

	litigation := section(t, vm, "opinion.litigation")
	require.Len(t, litigation.Cards, 2)
	assert.Equal(t, "诉讼风险评估", litigation.Group)
	assert.Equal(t, "低", litigation.Cards[1].Badge.Level)
}

func TestOpinionReputationRisk(t *testing.T) {
	vm := build(t, NewOpinion(), parse(t, `{"audit_analysis": {"reputation_risk": {
		"overall_assessment": "稳定",
		"brand_perception": {"strength": "强", "vulnerabilities": ["售后"]},
		"key_reputation_drivers": ["产品质量"]
	}}}`))

	s := section(t, vm, "opinion.reputation_risk")
	assert.Equal(t, "稳定", s.Status.Status)
	assert.Equal(t, []schema.Field{
		{Label: "品牌认知 / 强度", Value: "强"},
		{Label: "品牌认知 / 薄弱环节", Items: []string{"售后"}},
		{Label: "关键声誉驱动因素", Items: []string{"产品质量"}},
	}, s.Status.Fields)
}

func TestOpinionDailyMentionsKeepDayNumbers(t *testing.T) {
	vm := build(t, NewOpinion(), parse(t, `{
		"audit_analysis": {"reputation_risk": {"overall_assessment": "稳定"}},
		"media_exposure": {"total_mentions": 30, "daily_mentions": [10, null, 20]}
	}`))

	daily := section(t, vm, "opinion.daily_mentions").Metrics
	require.Len(t, daily, 2)
	assert.Equal(t, map[string]string{"1日": "10", "3日": "20"}, metricTexts(section(t, vm, "opinion.daily_mentions")))
	assert.Equal(t, "3日", daily[1].Label)
	assert.True(t, daily[1].Highlight)
	assert.False(t, daily[0].Highlight)
}

func TestMacroDefaultBuilder(t *testing.T) {
	root := load(t, "macro_aura.json")
	require.Equal(t, schema.DefaultVariant, classify.Classify(schema.MacroDomain, root))
	vm := build(t, NewMacro(), root)

	assert.Equal(t, []string{
		"macro.industry_indicators",
		"macro.growth_segments",
		"macro.regional_comparison",
		"macro.risk_assessment",
		"macro.industry_analysis",
		"macro.industry_analysis.peer_benchmarks",
		"macro.foreign_exchange",
		"macro.forecast_scenarios",
		"macro.going_concern",
		"macro.stress_tests",
		"macro.recent_policy_changes",
		"macro.policy_implication",
	}, vm.SectionKeys(), "empty pending legislation is omitted")

	assert.Equal(t, map[string]string{
		"市场规模":   "1,250,000,000 元",
		"市场增长率":  "8.3%",
		"竞争强度":   "7.2/10",
		"进入壁垒":   "6.4/10",
		"技术采用率":  "8.1/10",
		"行业生命周期": "成长期",
	}, metricTexts(section(t, vm, "macro.industry_indicators")))

	regions := section(t, vm, "macro.regional_comparison").Table
	assert.Equal(t, []string{"华东", "5.2%", "38%", "8.6/10", "领先", "支持"}, rowTexts(regions.Rows[0]))

	cards := section(t, vm, "macro.risk_assessment").Cards
	require.Len(t, cards, 2)
	assert.Equal(t, "经济周期位置", cards[0].Title)
	assert.Equal(t, "货币政策影响", cards[1].Title)

	peers := section(t, vm, "macro.industry_analysis.peer_benchmarks").Table
	assert.Equal(t, []string{"公司类型", "风险等级"}, peers.Columns)
	assert.Len(t, peers.Rows, 2)

	fx := section(t, vm, "macro.foreign_exchange")
	assert.Equal(t, "中", fx.Status.Status)
	assert.Contains(t, fx.Status.Fields, schema.Field{Label: "货币敞口 / USD", Value: "30%"})

	forecast := section(t, vm, "macro.forecast_scenarios").Cards[0]
	assert.Equal(t, "基准情景 (60%)", forecast.Title)
	assert.Equal(t, schema.Field{Label: "GDP增长", Value: "4.8%"}, forecast.Fields[0])
}

func TestMacroAlternateBuilder(t *testing.T) {
	root := load(t, "macro_beta.json")
	require.Equal(t, schema.AlternateVariant, classify.Classify(schema.MacroDomain, root))
	vm := build(t, NewMacro(), root)

	assert.Equal(t, schema.AlternateVariant, vm.Variant)
	assert.Equal(t, []string{
		"macro.economic_indicators",
		"macro.industry_conditions",
		"macro.risk_exposure",
		"macro.scenarios",
	}, vm.SectionKeys())

	economic := section(t, vm, "macro.economic_indicators").Table
	assert.Equal(t, indicatorColumns, economic.Columns)
	assert.Equal(t, []string{"GDP增长率", "5.2%", "稳定", "中性"}, rowTexts(economic.Rows[0]))
	assert.Equal(t, []string{"失业率", "5.0%", "平稳", "中性"}, rowTexts(economic.Rows[2]))

	industry := section(t, vm, "macro.industry_conditions").Table
	assert.Equal(t, []string{"市场增长", "12,500", "上升", "正面"}, rowTexts(industry.Rows[0]))

	assert.Equal(t, "利率敏感性", section(t, vm, "macro.risk_exposure").Cards[0].Title)
	assert.Equal(t, "悲观情景 (25%)", section(t, vm, "macro.scenarios").Cards[0].Title)
}

func TestExternalDefaultBuilder(t *testing.T) {
	vm := build(t, NewExternal(), load(t, "external_aura.json"))

	assert.Equal(t, schema.DefaultVariant, vm.Variant)
	assert.Equal(t, []string{
		"external.market_position",
		"external.key_competitors",
		"external.competitive_dynamics",
		"external.supplier_analysis",
		"external.customer_analysis",
		"external.customer_segmentation",
		"external.related_parties",
		"external.related_party_review",
		"external.competitive_compliance",
	}, vm.SectionKeys())

	assert.Equal(t, map[string]string{"市场份额": "18.3%", "行业排名": "第 2 位", "趋势": "上升"},
		metricTexts(section(t, vm, "external.market_position")))
	assert.Equal(t, []string{"竞争者A", "22.1%", "渠道", "成本"},
		rowTexts(section(t, vm, "external.key_competitors").Table.Rows[0]))

	suppliers := section(t, vm, "external.supplier_analysis").Cards
	require.Len(t, suppliers, 2)
	assert.Equal(t, schema.Field{Label: "前5供应商集中度", Value: "42%"}, suppliers[0].Fields[0])
	assert.Equal(t, schema.Field{Label: "地域集中度", Items: []string{"华东: 55%", "华南: 30%"}}, suppliers[1].Fields[0])

	customers := section(t, vm, "external.customer_analysis").Cards
	assert.Equal(t, schema.Field{Label: "总体评分", Value: "8.3/10"}, customers[1].Fields[0])
	assert.Equal(t, schema.Field{Label: "净推荐值(NPS)", Value: "46"}, customers[1].Fields[1])

	parties := section(t, vm, "external.related_parties").Table
	assert.Equal(t, []string{"关联公司甲", "同一控制", "23,500,000", "8.2%", "公允"}, rowTexts(parties.Rows[0]))
	assert.Equal(t, "中等", section(t, vm, "external.related_party_review").Status.Status)
}

func TestExternalAlternateBuilder(t *testing.T) {
	root := load(t, "external_beta.json")
	require.Equal(t, schema.AlternateVariant, classify.Classify(schema.ExternalDomain, root))
	vm := build(t, NewExternal(), root)

	assert.Equal(t, []string{
		"external.market_share",
		"external.competitive_position",
		"external.major_competitors",
		"external.customer_segments",
		"external.geographic_distribution",
		"external.product_portfolio",
		"external.product_portfolio.product_lines",
		"external.strategic_risks",
		"external.regulatory_challenges",
	}, vm.SectionKeys())

	assert.Equal(t, map[string]string{"当前份额": "12.6%", "行业排名": "第 4 位", "趋势": "下降"},
		metricTexts(section(t, vm, "external.market_share")))
	assert.Equal(t, []string{"零售", "58%", "7%", "81%", "高"},
		rowTexts(section(t, vm, "external.customer_segments").Table.Rows[0]))
	assert.Equal(t, []string{"华北: 46%"}, section(t, vm, "external.geographic_distribution").Tags[0].Tags)

	lines := section(t, vm, "external.product_portfolio.product_lines").Table
	assert.Equal(t, []string{"名称", "收入占比", "生命周期阶段", "增长率"}, lines.Columns)
	assert.Equal(t, []string{"智能设备", "", "", "0.35"}, rowTexts(lines.Rows[1]))

	strategic := section(t, vm, "external.strategic_risks").Cards[0]
	assert.Equal(t, "市场集中度风险", strategic.Title)
	assert.Equal(t, "中高", strategic.Badge.Label)
	assert.Equal(t, risk.ColorMediumHigh, strategic.Badge.Color)
}

func TestScalarMapEntries(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		doc     string
		present []string
		absent  []string
	}{
		{
			name:    "strategic risk with scalar assessment",
			builder: NewExternal(),
			doc: `{"market_position": {"market_share": {"current": 0.1}}, "customer_analysis": {}, "product_portfolio": {},
				"audit_analysis": {"strategic_risk_assessment": {"market_concentration_risk": "高"}}}`,
			present: []string{"external.market_share"},
			absent:  []string{"external.strategic_risks"},
		},
		{
			name:    "macro scenarios mixing scalars and objects",
			builder: NewMacro(),
			doc: `{"economic_indicators": {"gdp_growth": 5.2, "cpi": {"value": 0.02}},
				"audit_analysis": {"economic_scenario_analysis": {"base_case": "stable"}, "macro_risk_exposure": {"fx": "低"}}}`,
			present: []string{"macro.economic_indicators"},
			absent:  []string{"macro.scenarios", "macro.risk_exposure"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := build(t, tt.builder, parse(t, tt.doc))
			for _, key := range tt.present {
				section(t, vm, key)
			}
			for _, key := range tt.absent {
				_, found := vm.Section(key)
				assert.False(t, found, key)
			}
		})
	}
}

func TestExternalConcentrationOnly(t *testing.T) {
	vm := build(t, NewExternal(), parse(t, `{
		"competitive_landscape": {"market_position": {"market_share": 0.2}},
		"supplier_analysis": {"supplier_concentration": {"top_5_concentration": 0.4}},
		"customer_analysis": {"customer_concentration": {"top_5_concentration": 0.3}}
	}`))
	require.Equal(t, schema.DefaultVariant, vm.Variant)

	suppliers := section(t, vm, "external.supplier_analysis").Cards
	require.Len(t, suppliers, 1)
	assert.Equal(t, "供应商集中度", suppliers[0].Title)

	customers := section(t, vm, "external.customer_analysis").Cards
	require.Len(t, customers, 1)
	assert.Equal(t, "客户集中度", customers[0].Title)
}

func TestBuildEmptyStates(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		doc     string
		message string
	}{
		{"finance without audit analysis", NewFinance(), `{"financial_ratios": {"profitability": {"gross_margin": 0.3}}}`, FinanceNoData},
		{"finance audit analysis not an object", NewFinance(), `{"audit_analysis": [1, 2]}`, FinanceNoData},
		{"operation null audit analysis", NewOperation(), `{"audit_analysis": null}`, OperationNoData},
		{"opinion empty audit analysis", NewOpinion(), `{"audit_analysis": {}}`, OpinionNoData},
		{"macro without markers", NewMacro(), `{}`, MacroNoData},
		{"external with malformed landscape", NewExternal(), `{"competitive_landscape": "text"}`, ExternalNoData},
		{"non-object payload", NewMacro(), `[1, 2, 3]`, MacroNoData},
		{"macro indicators with scalar values", NewMacro(), `{"economic_indicators": {"gdp_growth": 5.2},
			"audit_analysis": {"macro_risk_exposure": {"interest_rate_sensitivity": "高"}, "economic_scenario_analysis": {"base_case": "stable"}}}`, MacroNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := build(t, tt.builder, parse(t, tt.doc))
			assert.Equal(t, schema.EmptyState, vm.State)
			assert.Equal(t, tt.message, vm.Message)
			assert.NotNil(t, vm.Sections)
			assert.Empty(t, vm.Sections)
		})
	}
}

func TestBuildUnsupportedVariant(t *testing.T) {
	_, err := NewFinance().Build(parse(t, `{"audit_analysis": {}}`), schema.AlternateVariant)
	assert.Error(t, err)
}

func TestAllAndNoDataMessage(t *testing.T) {
	builders := All()
	require.Len(t, builders, len(schema.AllDomains))
	for i, b := range builders {
		assert.Equal(t, schema.AllDomains[i], b.Domain())
		assert.NotEmpty(t, NoDataMessage(b.Domain()))
	}
	assert.Empty(t, NoDataMessage("unknown"))
}

func FuzzBuilders(f *testing.F) {
	entries, err := fixtures.ReadDir("testdata")
	if err != nil {
		f.Fatal(err)
	}
	for _, e := range entries {
		data, err := fixtures.ReadFile("testdata/" + e.Name())
		if err != nil {
			f.Fatal(err)
		}
		f.Add(data)
	}
	f.Add([]byte(`{"audit_analysis": {"key_risk_areas": [null, 1, {"area": []}]}}`))
	f.Add([]byte(`{"economic_indicators": {"gdp_growth": 5}, "audit_analysis": {"macro_risk_exposure": [1]}}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		root, err := payload.ParseNode(data)
		if err != nil {
			return
		}
		for _, b := range All() {
			for _, v := range classify.Variants(b.Domain()) {
				vm, err := b.Build(root, v)
				if err != nil {
					t.Fatalf("%s/%s: %v", b.Domain(), v, err)
				}
				if vm.State == schema.BuiltState && len(vm.Sections) == 0 {
					t.Fatalf("%s/%s: built view without sections", b.Domain(), v)
				}
			}
		}
	})
}
