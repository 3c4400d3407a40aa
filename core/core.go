// Package core renders audit-analysis payloads into view models and runs the
// command-level executors around the dispatcher.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/internal/datalake"
	"github.com/huangsam/auditview/internal/outwriter"
	"github.com/huangsam/auditview/schema"
	"github.com/sirupsen/logrus"
)

// ExecutorFunc defines the function signature for executing the CLI commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// stdin is read when the payload path is "-".
var stdin io.Reader = os.Stdin

// ExecuteRender renders one domain payload and prints the view.
// The payload comes from a file, stdin, or the configured DataLake source.
func ExecuteRender(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	log := contract.Logger.WithFields(logrus.Fields{"company": cfg.Company, "layer": cfg.Layer})
	ctx = withLogger(ctx, log)

	raw, err := loadInput(ctx, cfg)
	if err != nil {
		return err
	}
	vm := NewDispatcher(log).Render(cfg.Domain, raw)

	result := schema.DashboardResult{Views: []schema.ViewModel{vm}}
	if cfg.InputPath == "" {
		result.Company, result.Layer = cfg.Company, cfg.Layer
	}
	return outwriter.NewOutWriter().WriteViews(result, cfg, time.Since(start))
}

// ExecuteClassify reports which schema variant a payload follows.
func ExecuteClassify(ctx context.Context, cfg *contract.Config) error {
	log := contract.Logger.WithFields(logrus.Fields{"company": cfg.Company, "layer": cfg.Layer})
	ctx = withLogger(ctx, log)

	raw, err := loadInput(ctx, cfg)
	if err != nil {
		return err
	}
	res, err := NewDispatcher(log).Explain(cfg.Domain, raw)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteClassify([]schema.ClassifyResult{res}, cfg)
}

// ExecuteDashboard renders every configured domain of one company concurrently.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	log := contract.Logger.WithFields(logrus.Fields{"company": cfg.Company, "layer": cfg.Layer})
	ctx = withLogger(ctx, log)

	src, err := datalake.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource(src)

	printHeader(cfg, "📊", "Rendering %d domains of %s (%s layer) from %s", len(cfg.Domains), cfg.Company, cfg.Layer, src.Describe())
	result, err := RenderDashboard(ctx, src, NewDispatcher(log), cfg.Company, cfg.Layer, cfg.Domains, cfg.Workers)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteViews(result, cfg, time.Since(start))
}

// ExecuteDomains lists the supported domains and their classification rules.
// This is a static display that does not read any payload.
func ExecuteDomains(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteDomains(NewDispatcher(nil).Domains(), cfg)
}

// loadInput reads the payload named by cfg.InputPath, or fetches it from the DataLake.
func loadInput(ctx context.Context, cfg *contract.Config) (any, error) {
	var (
		raw any
		err error
	)
	switch cfg.InputPath {
	case "":
		domain := schema.Domain(cfg.Domain)
		if _, ok := schema.ValidDomains[domain]; !ok {
			return nil, fmt.Errorf("unknown domain %q: fetching from the DataLake needs one of finance, operation, opinion, macro, external", cfg.Domain)
		}
		src, openErr := datalake.Open(ctx, cfg)
		if openErr != nil {
			return nil, openErr
		}
		defer closeSource(src)
		printHeader(cfg, "🔎", "Fetching %s payload of %s (%s layer) from %s", domain, cfg.Company, cfg.Layer, src.Describe())
		raw, err = datalake.Load(ctx, src, cfg.Company, domain, cfg.Layer)
		if isMissing(err) {
			loggerFrom(ctx).WithField("domain", domain).WithError(err).Warn("payload missing")
			return nil, nil
		}
	case "-":
		raw, err = parseReader(stdin)
	default:
		raw, err = parseFile(cfg.InputPath)
	}
	if err != nil {
		return nil, err
	}
	warnFormat(ctx, cfg.Domain, raw)
	return raw, nil
}

func parseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return decodePayload(data)
}

func parseReader(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return decodePayload(data)
}

func decodePayload(data []byte) (any, error) {
	text, err := datalake.DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return payload.Parse(text)
}

// warnFormat logs payloads that do not declare the audit dashboard format.
func warnFormat(ctx context.Context, domain string, raw any) {
	if err := datalake.CheckFormat(raw); err != nil {
		loggerFrom(ctx).WithField("domain", domain).Warn(err.Error())
	}
}

// printHeader writes a status line to stderr so stdout stays machine-readable.
func printHeader(cfg *contract.Config, emoji, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if cfg.UseEmojis {
		msg = emoji + " " + msg
	}
	_, _ = fmt.Fprintln(os.Stderr, msg)
}

// isMissing reports whether err means the DataLake has no such payload.
func isMissing(err error) bool {
	return errors.Is(err, datalake.ErrNotFound)
}

// closeSource releases the payload source and reports failures on stderr.
func closeSource(src contract.PayloadSource) {
	if err := src.Close(); err != nil {
		contract.LogWarn("Cannot close payload source", err)
	}
}
