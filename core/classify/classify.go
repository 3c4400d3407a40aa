// Package classify detects which schema variant a domain payload follows.
//
// Detection is a decision table: each domain has an ordered list of rules that
// test for the presence of marker keys. The first matching rule wins and a
// payload that matches nothing falls back to the default variant.
package classify

import (
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/schema"
)

// FallbackRule names the result when no rule matched.
const FallbackRule = "fallback"

// Rule is one row of a decision table. Every non-empty condition must hold.
type Rule struct {
	Name     string
	Variant  schema.Variant
	AllOf    []string // keys that must all be present
	AnyOf    []string // at least one key must be present
	ObjectOf []string // keys that must hold objects
}

// Matches reports whether the payload satisfies the rule.
func (r Rule) Matches(root payload.Node) bool {
	for _, k := range r.AllOf {
		if !root.Has(k) {
			return false
		}
	}
	for _, k := range r.ObjectOf {
		if !root.Get(k).IsObject() {
			return false
		}
	}
	if len(r.AnyOf) == 0 {
		return true
	}
	for _, k := range r.AnyOf {
		if root.Has(k) {
			return true
		}
	}
	return false
}

// Markers returns every key the rule inspects.
func (r Rule) Markers() []string {
	out := make([]string, 0, len(r.AllOf)+len(r.AnyOf)+len(r.ObjectOf))
	out = append(out, r.ObjectOf...)
	out = append(out, r.AllOf...)
	return append(out, r.AnyOf...)
}

var table = map[schema.Domain][]Rule{
	schema.MacroDomain: {
		{
			Name:    "industry-indicators",
			Variant: schema.DefaultVariant,
			AnyOf:   []string{"industry_indicators", "regional_comparison"},
		},
		{
			Name:    "economic-indicators",
			Variant: schema.AlternateVariant,
			AnyOf:   []string{"economic_indicators", "industry_conditions"},
		},
	},
	schema.ExternalDomain: {
		{
			Name:    "market-position",
			Variant: schema.AlternateVariant,
			AllOf:   []string{"market_position", "customer_analysis", "product_portfolio"},
		},
		{
			Name:     "competitive-landscape",
			Variant:  schema.DefaultVariant,
			ObjectOf: []string{"competitive_landscape"},
			AnyOf:    []string{"supplier_analysis", "customer_analysis"},
		},
	},
}

// Classify returns the variant of a payload. It is pure and total.
func Classify(domain schema.Domain, root payload.Node) schema.Variant {
	return Explain(domain, root).Variant
}

// Explain returns the variant together with the rule that selected it.
func Explain(domain schema.Domain, root payload.Node) schema.ClassifyResult {
	res := schema.ClassifyResult{Domain: domain, Variant: schema.DefaultVariant, Rule: FallbackRule}
	if !root.IsObject() {
		return res
	}
	for _, r := range table[domain] {
		if r.Matches(root) {
			res.Variant = r.Variant
			res.Rule = r.Name
			return res
		}
	}
	return res
}

// Rules returns a copy of the decision table of a domain.
func Rules(domain schema.Domain) []Rule {
	rules := table[domain]
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Variants lists the variants a domain can produce, default first.
func Variants(domain schema.Domain) []schema.Variant {
	out := []schema.Variant{schema.DefaultVariant}
	for _, r := range table[domain] {
		if r.Variant != schema.DefaultVariant {
			out = append(out, r.Variant)
		}
	}
	return out
}
