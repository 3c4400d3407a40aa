package builder

// labels maps payload keys to display names. Unknown keys pass through unchanged.
type labels map[string]string

func (l labels) of(key string) string {
	if name, ok := l[key]; ok {
		return name
	}
	return key
}

var controlCycleLabels = labels{
	"procurement_cycle": "采购循环",
	"production_cycle":  "生产循环",
	"inventory_cycle":   "库存循环",
	"logistics_cycle":   "物流循环",
}

var efficiencyLabels = labels{
	"capacity_utilization": "产能利用率",
	"labor_productivity":   "劳动生产率",
	"asset_efficiency":     "资产效率",
	"energy_consumption":   "能源消耗",
}

var indicatorLabels = labels{
	"gdp_growth":                 "GDP增长率",
	"interest_rate":              "利率",
	"inflation_rate":             "通胀率",
	"unemployment_rate":          "失业率",
	"currency_exchange":          "汇率",
	"market_growth":              "市场增长",
	"competitive_intensity":      "竞争强度",
	"technology_evolution":       "技术演进",
	"regulatory_environment":     "监管环境",
	"industry_cycle_position":    "行业周期位置",
	"interest_rate_sensitivity":  "利率敏感性",
	"regulatory_change_exposure": "监管变化敏感度",
	"technology_disruption_risk": "技术颠覆风险",
}

var scenarioLabels = labels{
	"base_case":     "基准情景",
	"upside_case":   "乐观情景",
	"downside_case": "悲观情景",
}

var strategicRiskLabels = labels{
	"market_concentration_risk":  "市场集中度风险",
	"disruptive_innovation_risk": "颠覆性创新风险",
	"market_expansion_risk":      "市场扩张风险",
}

// fieldLabels names the common keys of free-form audit objects.
var fieldLabels = labels{
	"assessment":           "评估",
	"audit_implication":    "审计含义",
	"audit_focus":          "审计重点",
	"recommendation":       "建议",
	"impact":               "影响",
	"trend":                "趋势",
	"exposure_level":       "敞口水平",
	"currency_exposure":    "货币敞口",
	"hedging_strategy":     "对冲策略",
	"sensitivity_analysis": "敏感性分析",
	"key_risks":            "关键风险",
	"key_findings":         "主要发现",
	"company_type":         "公司类型",
	"risk_level":           "风险等级",
	"description":          "描述",
	"status":               "状态",
	"products":             "产品",
	"product_lines":        "产品线",
	"name":                 "名称",
	"product":              "产品",
	"revenue_percentage":   "收入占比",
	"revenue_contribution": "收入贡献",
	"growth_rate":          "增长率",
	"profit_margin":        "利润率",
	"lifecycle_stage":      "生命周期阶段",
	"market_share":         "市场份额",
	"innovation_pipeline":  "创新管线",
	"concentration_risk":   "集中度风险",
	"diversification":      "多元化程度",
}

// trendLabel renders a sentiment trend direction.
func trendLabel(trend string) string {
	switch trend {
	case "improving":
		return "↗️ 上升"
	case "declining":
		return "↘️ 下降"
	default:
		return "→ 平稳"
	}
}
