// Package builder assembles view models from audit payloads, one builder per domain.
//
// Builders are defensive: a missing or wrongly-shaped branch drops its section
// instead of failing, and a payload with nothing displayable yields an empty view.
package builder

import (
	"fmt"

	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/schema"
)

// Messages shown when a domain payload has nothing to render.
const (
	FinanceNoData   = "未找到财务审计分析数据"
	OperationNoData = "未找到运营审计分析数据"
	OpinionNoData   = "未找到舆情审计分析数据"
	MacroNoData     = "未找到宏观经济审计分析数据或数据不完整"
	ExternalNoData  = "未找到外部环境审计分析数据或数据不完整"
)

// Builder turns a classified payload into a view model.
type Builder interface {
	Domain() schema.Domain
	Build(root payload.Node, variant schema.Variant) (schema.ViewModel, error)
}

type buildFunc func(root payload.Node) sectionList

// domainBuilder is the shared Builder implementation. Each domain file supplies
// its guard and one buildFunc per variant.
type domainBuilder struct {
	domain   schema.Domain
	noData   string
	required string // root branch that must be an object, "" when none
	variants map[schema.Variant]buildFunc
}

var _ Builder = &domainBuilder{} // Compile-time check

// Domain returns the domain handled by the builder.
func (b *domainBuilder) Domain() schema.Domain {
	return b.domain
}

// Build renders the payload. A missing required branch, or a payload that yields
// no sections, returns an empty view carrying the domain's no-data message.
func (b *domainBuilder) Build(root payload.Node, variant schema.Variant) (schema.ViewModel, error) {
	vm := schema.ViewModel{
		Domain:   b.domain,
		Variant:  variant,
		Title:    b.domain.Title(),
		Sections: []schema.Section{},
	}
	if !root.IsObject() || (b.required != "" && !root.Get(b.required).IsObject()) {
		return b.empty(vm), nil
	}

	build, ok := b.variants[variant]
	if !ok {
		return vm, fmt.Errorf("unsupported %s variant %q", b.domain, variant)
	}
	sections := build(root)
	if len(sections) == 0 {
		return b.empty(vm), nil
	}
	vm.State = schema.BuiltState
	vm.Sections = sections
	return vm, nil
}

func (b *domainBuilder) empty(vm schema.ViewModel) schema.ViewModel {
	vm.State = schema.EmptyState
	vm.Message = b.noData
	return vm
}

// All returns a fresh builder for every domain.
func All() []Builder {
	return []Builder{
		NewFinance(),
		NewOperation(),
		NewOpinion(),
		NewMacro(),
		NewExternal(),
	}
}

// NoDataMessage returns the empty-state message of a domain.
func NoDataMessage(domain schema.Domain) string {
	switch domain {
	case schema.FinanceDomain:
		return FinanceNoData
	case schema.OperationDomain:
		return OperationNoData
	case schema.OpinionDomain:
		return OpinionNoData
	case schema.MacroDomain:
		return MacroNoData
	case schema.ExternalDomain:
		return ExternalNoData
	}
	return ""
}
