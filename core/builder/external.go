package builder

import (
	"github.com/huangsam/auditview/core/format"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/core/risk"
	"github.com/huangsam/auditview/schema"
)

const (
	groupMarket      = "市场地位分析"
	groupCustomer    = "客户分析"
	groupPortfolio   = "产品组合"
	groupLandscape   = "竞争格局分析"
	groupSupplier    = "供应商分析"
	groupRelated     = "关联方交易分析"
	groupAlliances   = "战略联盟与合资企业"
	groupCompliance  = "竞争实践合规性"
	groupRegulation  = "监管环境挑战"
	groupStrategic   = "战略风险评估"
	groupCompetitors = "主要竞争对手"
)

// NewExternal returns the external-environment audit builder. The alternate
// variant reads market position, customers and the product portfolio; the
// default one reads the competitive landscape with supplier and customer analyses.
func NewExternal() Builder {
	return &domainBuilder{
		domain: schema.ExternalDomain,
		noData: ExternalNoData,
		variants: map[schema.Variant]buildFunc{
			schema.DefaultVariant:   buildExternalLandscape,
			schema.AlternateVariant: buildExternalMarket,
		},
	}
}

func buildExternalMarket(root payload.Node) sectionList {
	audit := root.Get("audit_analysis")

	var out sectionList
	out.add(externalMarket(root.Get("market_position"))...)
	out.add(externalSegments(root.Get("customer_analysis"))...)
	out.add(externalPortfolio(root.Get("product_portfolio"))...)
	out.add(
		externalStrategicRisks(audit.Get("strategic_risk_assessment")),
		externalRegulation(audit.Path("regulatory_environment_impact", "regulatory_challenges")),
	)
	return out
}

func externalMarket(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	share := n.Get("market_share")
	landscape := n.Get("competitive_landscape")

	competitors := rows(landscape.Get("major_competitors"), func(c payload.Node) []schema.Cell {
		return cells(
			c.Get("name").Text(),
			format.Percentage(c.Get("market_share"), 1),
			c.Get("trend").Text(),
		)
	})
	return []*schema.Section{
		metricSection("external.market_share", groupMarket, "市场份额", []schema.Metric{
			metric("当前份额", format.PercentageValue(share.Get("current"), 1)),
			metric("行业排名", format.RankValue(share.Get("industry_rank"))),
			metric("趋势", format.FreeformValue(share.Get("trend"))),
		}),
		tagSection("external.competitive_position", groupMarket, "竞争优劣势",
			tags("竞争优势", schema.PositiveTone, landscape.Get("competitive_advantage")),
			tags("竞争劣势", schema.NegativeTone, landscape.Get("competitive_disadvantage")),
		),
		tableSection("external.major_competitors", groupMarket, groupCompetitors,
			[]string{"公司", "市场份额", "趋势"}, competitors),
	}
}

func externalSegments(n payload.Node) []*schema.Section {
	segments := rows(n.Get("customer_segments"), func(s payload.Node) []schema.Cell {
		return cells(
			s.Get("segment").Text(),
			format.Percentage(s.Get("revenue_percentage"), 0),
			format.Percentage(s.Get("growth_rate"), 0),
			format.Percentage(s.Get("retention_rate"), 0),
			s.Get("profitability").Text(),
		)
	})
	if len(segments) == 0 {
		return nil
	}
	var regions []string
	for _, g := range n.Get("geographical_distribution").Objects() {
		regions = append(regions, g.Get("region").Text()+": "+format.Percentage(g.Get("percentage"), 0))
	}
	return []*schema.Section{
		tableSection("external.customer_segments", groupCustomer, groupCustomer,
			[]string{"客户群体", "收入占比", "增长率", "留存率", "盈利能力"}, segments),
		tagSection("external.geographic_distribution", groupCustomer, "地域分布",
			schema.TagGroup{Label: "地域分布", Tags: regions}),
	}
}

func externalPortfolio(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	var out []*schema.Section
	if fields := genericFields(n, fieldLabels); len(fields) > 0 {
		out = append(out, cardSection("external.product_portfolio", groupPortfolio, groupPortfolio,
			[]schema.Card{{Title: groupPortfolio, Fields: fields}}))
	}
	return append(out, genericTables(n, "external.product_portfolio", groupPortfolio, fieldLabels)...)
}

func externalStrategicRisks(n payload.Node) *schema.Section {
	var cards []schema.Card
	for _, e := range n.Entries() {
		if !e.Value.IsObject() {
			continue
		}
		var fs fieldSet
		fs.list("主要发现", e.Value.Get("key_findings")).
			text("潜在影响", e.Value.Get("potential_impact")).
			text("建议", e.Value.Get("recommendation"))
		cards = append(cards, schema.Card{
			Title:  strategicRiskLabels.of(e.Key),
			Badge:  risk.StrippedBadge(e.Value.Get("assessment")),
			Fields: fs.fields(),
		})
	}
	return cardSection("external.strategic_risks", "", groupStrategic, cards)
}

func externalRegulation(n payload.Node) *schema.Section {
	body := rows(n, func(c payload.Node) []schema.Cell {
		return cells(
			c.Get("area").Text(),
			c.Get("impact").Text(),
			c.Get("compliance_status").Text(),
			c.Get("action_required").Text(),
		)
	})
	return tableSection("external.regulatory_challenges", "", groupRegulation,
		[]string{"领域", "影响", "合规状态", "所需行动"}, body)
}

func buildExternalLandscape(root payload.Node) sectionList {
	audit := root.Get("audit_analysis")

	var out sectionList
	out.add(externalLandscape(root.Get("competitive_landscape"))...)
	out.add(externalSuppliers(root.Get("supplier_analysis")))
	out.add(externalCustomers(root.Get("customer_analysis"))...)
	out.add(externalRelatedParties(audit.Get("related_party_transactions"))...)
	out.add(externalCompliance(audit.Get("competitive_practices_compliance")))
	out.add(externalAlliances(audit.Get("strategic_alliances_and_jvs"))...)
	return out
}

func externalLandscape(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	var out []*schema.Section
	if position := n.Get("market_position"); position.IsObject() {
		competitors := rows(position.Get("key_competitors"), func(c payload.Node) []schema.Cell {
			return cells(
				c.Get("name").Text(),
				format.Percentage(c.Get("market_share"), 1),
				c.Get("strength").Text(),
				c.Get("weakness").Text(),
			)
		})
		out = append(out,
			metricSection("external.market_position", groupLandscape, "市场地位", []schema.Metric{
				metric("市场份额", format.PercentageValue(position.Get("market_share"), 1)),
				metric("行业排名", format.RankValue(position.Get("rank"))),
				metric("趋势", format.FreeformValue(position.Get("trend"))),
			}),
			tableSection("external.key_competitors", groupLandscape, groupCompetitors,
				[]string{"公司", "市场份额", "优势", "劣势"}, competitors),
		)
	}
	if dynamics := n.Get("competitive_dynamics"); dynamics.IsObject() {
		var fs fieldSet
		fs.text("价格竞争", dynamics.Get("price_competition")).
			text("服务差异化", dynamics.Get("service_differentiation")).
			text("创新步伐", dynamics.Get("innovation_pace")).
			text("进入壁垒", dynamics.Get("entry_barriers")).
			text("整合趋势", dynamics.Get("consolidation_trend"))
		out = append(out, cardSection("external.competitive_dynamics", groupLandscape, "竞争动态",
			[]schema.Card{{Title: "竞争动态", Fields: fs.fields()}}))
	}
	return out
}

// concentrationCard renders the top-5/top-10 concentration block shared by
// supplier and customer analyses.
func concentrationCard(title, party string, n payload.Node) schema.Card {
	var fs fieldSet
	fs.value("前5"+party+"集中度", format.Percentage(n.Get("top_5_concentration"), 0)).
		value("前10"+party+"集中度", format.Percentage(n.Get("top_10_concentration"), 0)).
		text("风险评估", n.Get("risk_assessment")).
		text("趋势", n.Get("trend"))
	return schema.Card{Title: title, Fields: fs.fields()}
}

func externalSuppliers(n payload.Node) *schema.Section {
	if !filled(n) {
		return nil
	}
	cards := []schema.Card{concentrationCard("供应商集中度", "供应商", n.Get("supplier_concentration"))}

	chain := n.Get("supply_chain_risks")
	var regions []string
	for _, e := range chain.Get("geographic_concentration").Entries() {
		regions = append(regions, e.Key+": "+format.Percentage(e.Value, 0))
	}
	fs := fieldSet{}
	if len(regions) > 0 {
		fs = append(fs, schema.Field{Label: "地域集中度", Items: regions})
	}
	fs.text("中断风险", chain.Get("disruption_probability")).
		text("缓解措施", chain.Get("mitigation_measures"))
	if len(fs) > 0 {
		cards = append(cards, schema.Card{Title: "供应链风险", Fields: fs.fields()})
	}
	return cardSection("external.supplier_analysis", groupSupplier, groupSupplier, cards)
}

func externalCustomers(n payload.Node) []*schema.Section {
	if !filled(n) {
		return nil
	}
	satisfaction := n.Get("customer_satisfaction")
	var fs fieldSet
	if score := satisfaction.Get("overall_score"); score.Present() {
		fs.value("总体评分", format.Score(score, 1, 1))
	}
	fs.text("净推荐值(NPS)", satisfaction.Get("nps")).
		list("关键优势", satisfaction.Get("key_strengths")).
		list("改进领域", satisfaction.Get("improvement_areas"))

	segments := rows(n.Get("customer_segmentation"), func(s payload.Node) []schema.Cell {
		return cells(
			s.Get("segment").Text(),
			format.Percentage(s.Get("revenue_contribution"), 0),
			format.Percentage(s.Get("profit_margin"), 0),
			format.Percentage(s.Get("growth"), 0),
			format.Percentage(s.Get("churn_rate"), 0),
		)
	})
	cards := []schema.Card{concentrationCard("客户集中度", "客户", n.Get("customer_concentration"))}
	if len(fs) > 0 {
		cards = append(cards, schema.Card{Title: "客户满意度", Fields: fs.fields()})
	}
	return []*schema.Section{
		cardSection("external.customer_analysis", groupCustomer, groupCustomer, cards),
		tableSection("external.customer_segmentation", groupCustomer, "客户细分",
			[]string{"细分市场", "收入贡献", "利润率", "增长率", "流失率"}, segments),
	}
}

func externalRelatedParties(n payload.Node) []*schema.Section {
	if !n.IsObject() {
		return nil
	}
	parties := rows(n.Get("related_parties_identified"), func(p payload.Node) []schema.Cell {
		return cells(
			p.Get("name").Text(),
			p.Get("relationship").Text(),
			format.Count(p.Get("transaction_volume")),
			format.Percentage(p.Get("percentage_of_category"), 1),
			p.Get("pricing_assessment").Text(),
		)
	})
	var fs fieldSet
	fs.text("审计观察", n.Get("audit_observations")).
		text("审计建议", n.Get("audit_recommendations"))
	return []*schema.Section{
		tableSection("external.related_parties", groupRelated, "关联方",
			[]string{"关联方", "关系", "交易量", "类别占比", "定价评估"}, parties),
		statusSection("external.related_party_review", groupRelated, "风险评估", schema.StatusBlock{
			Status: n.Get("risk_assessment").Text(),
			Fields: fs.fields(),
		}),
	}
}

func externalCompliance(n payload.Node) *schema.Section {
	if !n.IsObject() {
		return nil
	}
	pricing := n.Get("pricing_practices_review")
	var fs fieldSet
	fs.text("定价实践评估 / 掠夺性定价风险", pricing.Get("predatory_pricing_risk")).
		text("定价实践评估 / 价格固定风险", pricing.Get("price_fixing_risk")).
		text("定价实践评估 / 折扣政策合规性", pricing.Get("discount_policy_compliance")).
		text("审计建议", n.Get("audit_recommendations"))
	return statusSection("external.competitive_compliance", "", groupCompliance, schema.StatusBlock{
		Status: n.Get("antitrust_risk_assessment").Text(),
		Fields: fs.fields(),
	})
}

func externalAlliances(n payload.Node) []*schema.Section {
	if !n.IsObject() {
		return nil
	}
	relationships := rows(n.Get("key_relationships"), func(r payload.Node) []schema.Cell {
		return cells(
			r.Get("entity").Text(),
			r.Get("type").Text(),
			r.Get("purpose").Text(),
			r.Get("status").Text(),
			r.Get("financial_exposure").Text(),
			r.Get("governance_assessment").Text(),
		)
	})
	management := n.Get("risk_management")
	var fs fieldSet
	fs.text("合同保护", management.Get("contract_protections")).
		text("退出机制", management.Get("exit_mechanisms")).
		text("绩效监控", management.Get("performance_monitoring")).
		text("审计建议", n.Get("audit_recommendations"))
	return []*schema.Section{
		tableSection("external.key_relationships", groupAlliances, "关键关系",
			[]string{"实体", "类型", "目的", "状态", "财务敞口", "治理评估"}, relationships),
		statusSection("external.alliance_risk_management", groupAlliances, "风险管理", schema.StatusBlock{Fields: fs.fields()}),
	}
}
