package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/auditview/core/builder"
	"github.com/huangsam/auditview/core/classify"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/schema"
	"github.com/sirupsen/logrus"
)

// Messages of the dispatcher's own empty and failed states.
const (
	NoPayloadMessage     = "未找到审计分析数据"
	unknownDomainMessage = "未知的数据类型: %s"
	buildFailedMessage   = "渲染%s审计视图时出错: %v"
	errorStatus          = "error"
)

// Dispatcher routes a domain payload to its builder. It holds no mutable state
// and is safe for concurrent use.
type Dispatcher struct {
	builders map[schema.Domain]builder.Builder
	log      logrus.FieldLogger
}

// NewDispatcher returns a dispatcher over the given builders, or over every
// domain builder when none are given. A nil logger discards log output.
func NewDispatcher(log logrus.FieldLogger, builders ...builder.Builder) *Dispatcher {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	if len(builders) == 0 {
		builders = builder.All()
	}
	d := &Dispatcher{builders: make(map[schema.Domain]builder.Builder, len(builders)), log: log}
	for _, b := range builders {
		d.builders[b.Domain()] = b
	}
	return d
}

// Render turns a raw payload into the view of a domain. It never fails:
// problems are reported through the view's state and message.
func (d *Dispatcher) Render(domain string, raw any) schema.ViewModel {
	name := schema.Domain(domain)
	root := payload.Wrap(raw)
	if !root.IsObject() {
		return d.settle(schema.ViewModel{
			Domain:   name,
			State:    schema.EmptyState,
			Title:    name.Title(),
			Message:  NoPayloadMessage,
			Sections: []schema.Section{},
		})
	}

	b, ok := d.builders[name]
	if !ok {
		return d.settle(schema.ViewModel{
			Domain:   name,
			State:    schema.EmptyState,
			Title:    name.Title(),
			Message:  fmt.Sprintf(unknownDomainMessage, domain),
			Sections: []schema.Section{},
		})
	}

	variant := classify.Classify(name, root)
	d.log.WithFields(logrus.Fields{"domain": domain, "variant": variant}).Debug("building view")

	vm, err := safeBuild(b, root, variant)
	if err != nil {
		d.log.WithFields(logrus.Fields{"domain": domain, "variant": variant}).WithError(err).Warn("failed to render view")
		return d.settle(failedView(name, variant, err))
	}
	return d.settle(vm)
}

// Explain classifies a payload without building it.
func (d *Dispatcher) Explain(domain string, raw any) (schema.ClassifyResult, error) {
	name := schema.Domain(domain)
	if _, ok := d.builders[name]; !ok {
		return schema.ClassifyResult{}, fmt.Errorf("unknown domain %q", domain)
	}
	return classify.Explain(name, payload.Wrap(raw)), nil
}

// Domains describes the domains known to the dispatcher in display order.
func (d *Dispatcher) Domains() []schema.DomainInfo {
	var out []schema.DomainInfo
	for _, domain := range schema.AllDomains {
		if _, ok := d.builders[domain]; !ok {
			continue
		}
		info := schema.DomainInfo{
			Domain:   domain,
			Title:    domain.Title(),
			Variants: classify.Variants(domain),
			Rules:    []schema.RuleInfo{},
			NoData:   builder.NoDataMessage(domain),
		}
		for _, r := range classify.Rules(domain) {
			info.Rules = append(info.Rules, schema.RuleInfo{Name: r.Name, Variant: r.Variant, Markers: r.Markers()})
		}
		out = append(out, info)
	}
	return out
}

func (d *Dispatcher) settle(vm schema.ViewModel) schema.ViewModel {
	d.log.WithFields(logrus.Fields{"domain": vm.Domain, "variant": vm.Variant, "state": vm.State}).Debug("view settled")
	return vm
}

// safeBuild runs a builder and converts a panic into an error.
func safeBuild(b builder.Builder, root payload.Node, variant schema.Variant) (vm schema.ViewModel, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch t := r.(type) {
			case error:
				err = t
			default:
				err = errors.New(fmt.Sprint(t))
			}
		}
	}()
	return b.Build(root, variant)
}

func failedView(domain schema.Domain, variant schema.Variant, err error) schema.ViewModel {
	msg := fmt.Sprintf(buildFailedMessage, domain, err)
	return schema.ViewModel{
		Domain:  domain,
		Variant: variant,
		State:   schema.FailedState,
		Title:   domain.Title(),
		Message: msg,
		Sections: []schema.Section{{
			Kind:  schema.StatusBlockSection,
			Key:   string(domain) + ".error",
			Title: domain.Title(),
			Status: &schema.StatusBlock{
				Status:  errorStatus,
				Tone:    schema.NegativeTone,
				Message: msg,
			},
		}},
	}
}
