package builder

import (
	"github.com/huangsam/auditview/core/format"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/schema"
)

const (
	groupAnalytical = "分析性程序"
	groupRatios     = "关键财务比率分析"
	groupControl    = "内部控制评估"
)

// NewFinance returns the finance audit builder.
func NewFinance() Builder {
	return &domainBuilder{
		domain:   schema.FinanceDomain,
		noData:   FinanceNoData,
		required: "audit_analysis",
		variants: map[schema.Variant]buildFunc{schema.DefaultVariant: buildFinance},
	}
}

func buildFinance(root payload.Node) sectionList {
	audit := root.Get("audit_analysis")
	ratios := root.Get("financial_ratios")

	var out sectionList
	out.add(
		financeRiskAreas(audit.Get("key_risk_areas")),
		financeGoingConcern(audit.Get("going_concern")),
	)
	out.add(financeInternalControl(audit.Get("internal_control"))...)
	out.add(financeAnalytical(audit.Get("analytical_procedures"))...)
	out.add(financeRatios(ratios)...)
	return out
}

func financeRiskAreas(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, item := range n.Objects() {
		cards = append(cards, findingCard(item, "area", func(fs *fieldSet) {
			fs.text("审计关注点", item.Get("audit_focus"))
			fs.text("潜在错报风险", item.Get("potential_misstatement"))
			fs.text("建议", item.Get("recommendation"))
		}))
	}
	return cardSection("finance.key_risk_areas", "", "关键风险区域", cards)
}

func financeGoingConcern(n payload.Node) *schema.Section {
	if !n.IsObject() {
		return nil
	}
	var fs fieldSet
	fs.text("流动性", n.Get("liquidity_assessment")).
		text("偿债能力", n.Get("debt_service_capability")).
		text("经营指标", n.Get("operational_indicators")).
		text("分析", n.Get("analysis"))
	return statusSection("finance.going_concern", "", "持续经营评估", schema.StatusBlock{
		Status: n.Get("status").Text(),
		Fields: fs.fields(),
	})
}

func financeInternalControl(n payload.Node) []*schema.Section {
	if !n.IsObject() {
		return nil
	}
	var fs fieldSet
	fs.text("总体评估", n.Get("overall_assessment")).
		text("控制环境", n.Get("control_environment")).
		text("风险评估流程", n.Get("risk_assessment_process")).
		text("信息系统", n.Get("information_system"))

	deficiencies := rows(n.Get("significant_deficiencies"), func(d payload.Node) []schema.Cell {
		return cells(
			d.Get("area").Text(),
			d.Get("description").Text(),
			d.Get("impact").Text(),
			d.Get("recommendation").Text(),
		)
	})
	return []*schema.Section{
		statusSection("finance.internal_control", groupControl, groupControl, schema.StatusBlock{Fields: fs.fields()}),
		tableSection("finance.significant_deficiencies", groupControl, "重要缺陷",
			[]string{"领域", "描述", "影响程度", "改进建议"}, deficiencies),
	}
}

func financeAnalytical(n payload.Node) []*schema.Section {
	if !n.IsObject() {
		return nil
	}
	var trends *schema.Section
	revenue, expense := n.Get("revenue_trend"), n.Get("expense_trend")
	if revenue.IsObject() && expense.IsObject() {
		trends = cardSection("finance.trends", groupAnalytical, "收入与费用趋势", []schema.Card{
			trendCard("收入趋势", revenue),
			trendCard("费用趋势", expense),
		})
	}

	unusual := rows(n.Get("unusual_transactions"), func(t payload.Node) []schema.Cell {
		return cells(
			t.Get("description").Text(),
			t.Get("materiality").Text(),
			t.Get("conclusion").Text(),
		)
	})
	return []*schema.Section{
		trends,
		tableSection("finance.unusual_transactions", groupAnalytical, "异常交易",
			[]string{"描述", "重要性", "结论"}, unusual),
	}
}

func trendCard(title string, n payload.Node) schema.Card {
	var fs fieldSet
	fs.text("评估", n.Get("assessment")).text("说明", n.Get("explanation"))
	return schema.Card{Title: title, Fields: fs.fields()}
}

// financeRatios renders each ratio category whose source object is non-empty.
// Every metric of a shown category is listed, with N/A for missing values.
func financeRatios(n payload.Node) []*schema.Section {
	profitability := n.Get("profitability")
	liquidity := n.Get("liquidity")
	solvency := n.Get("solvency")
	efficiency := n.Get("efficiency")

	var out []*schema.Section
	if filled(profitability) {
		out = append(out, metricSection("finance.profitability", groupRatios, "盈利能力", []schema.Metric{
			metric("毛利率", format.PercentageValue(profitability.Get("gross_margin"), 1)),
			metric("营业利润率", format.PercentageValue(profitability.Get("operating_margin"), 1)),
			metric("净利率", format.PercentageValue(profitability.Get("net_profit_margin"), 1)),
			metric("ROE", format.PercentageValue(profitability.Get("return_on_equity"), 1)),
		}))
	}
	if filled(liquidity) || filled(solvency) {
		out = append(out, metricSection("finance.liquidity", groupRatios, "流动性与偿债能力", []schema.Metric{
			metric("流动比率", format.RatioValue(liquidity.Get("current_ratio"), 2)),
			metric("速动比率", format.RatioValue(liquidity.Get("quick_ratio"), 2)),
			metric("资产负债率", format.PercentageValue(solvency.Get("debt_ratio"), 1)),
			metric("利息覆盖率", format.RatioValue(solvency.Get("interest_coverage"), 1)),
		}))
	}
	if filled(efficiency) {
		out = append(out, metricSection("finance.efficiency", groupRatios, "运营效率", []schema.Metric{
			metric("资产周转率", format.RatioValue(efficiency.Get("asset_turnover"), 2)),
			metric("存货周转率", format.RatioValue(efficiency.Get("inventory_turnover"), 2)),
			metric("应收账款周转率", format.RatioValue(efficiency.Get("receivable_turnover"), 2)),
			metric("应付账款周转率", format.RatioValue(efficiency.Get("accounts_payable_turnover"), 2)),
		}))
	}
	return out
}
