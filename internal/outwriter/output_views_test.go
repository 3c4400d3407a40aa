package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() schema.DashboardResult {
	high := &schema.Badge{Label: "高风险", Level: "高", Severity: 5}
	return schema.DashboardResult{
		Company: "aura",
		Layer:   schema.AnalysisLayer,
		Views: []schema.ViewModel{
			{
				Domain:  schema.OperationDomain,
				Variant: schema.DefaultVariant,
				State:   schema.BuiltState,
				Title:   "运营审计分析",
				Sections: []schema.Section{
					{
						Kind:  schema.CardSection,
						Key:   "operation.operational_risks",
						Title: "运营风险评估",
						Cards: []schema.Card{{
							Title: "供应链",
							Badge: high,
							Fields: []schema.Field{
								{Label: "描述", Value: "单一供应商依赖"},
								{Label: "关键控制点", Items: []string{"审批", "复核"}},
							},
						}},
					},
					{
						Kind:  schema.TableSection,
						Key:   "operation.departments",
						Title: "部门绩效审计",
						Table: &schema.Table{
							Columns: []string{"部门", "风险等级"},
							Rows:    [][]schema.Cell{{{Text: "生产部"}, {Badge: high}}},
						},
					},
					{
						Kind:  schema.TagListSection,
						Key:   "opinion.topics",
						Group: "舆情情感分析",
						Title: "主要话题分析",
						Tags:  []schema.TagGroup{{Label: "正面关键话题", Tone: schema.PositiveTone, Tags: []string{"新产品", "环保"}}},
					},
					{
						Kind:    schema.MetricGridSection,
						Key:     "opinion.daily_mentions",
						Group:   "舆情情感分析",
						Title:   "每日提及量",
						Metrics: []schema.Metric{{Label: "3日", Value: schema.MetricValue{Text: "980"}, Highlight: true}},
					},
					{
						Kind:   schema.StatusBlockSection,
						Key:    "operation.business_continuity",
						Title:  "业务连续性评估",
						Status: &schema.StatusBlock{Status: "中等", Fields: []schema.Field{{Label: "建议", Value: "建立备用供应商"}}},
					},
				},
			},
			{
				Domain:   schema.MacroDomain,
				State:    schema.EmptyState,
				Title:    "宏观经济审计分析",
				Message:  "未找到宏观经济审计分析数据或数据不完整",
				Sections: []schema.Section{},
			},
		},
	}
}

func plainConfig(output schema.OutputMode) *contract.Config {
	return &contract.Config{Output: output, Width: 120, Workers: 2}
}

func TestWriteViewsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeViewsText(&buf, sampleResult(), plainConfig(schema.TextOut), time.Second))

	out := buf.String()
	for _, want := range []string{
		"运营审计分析 · operation (default)",
		"-- 运营风险评估 --",
		"▸ 供应链 [高风险]",
		"  描述: 单一供应商依赖",
		"    - 复核",
		"生产部",
		"== 舆情情感分析 ==",
		"正面关键话题: 新产品, 环保",
		"980 ▲",
		"状态: 中等",
		"  建议: 建立备用供应商",
		"宏观经济审计分析 · macro",
		"  未找到宏观经济审计分析数据或数据不完整",
		"Rendered 2 views for aura (analysis layer)",
	} {
		assert.Contains(t, out, want)
	}
	// The shared group heading is printed once
	assert.Equal(t, 1, strings.Count(out, "== 舆情情感分析 =="))
}

func TestWriteViewsTextEmoji(t *testing.T) {
	cfg := plainConfig(schema.TextOut)
	cfg.UseEmojis = true

	var buf bytes.Buffer
	require.NoError(t, writeViewsText(&buf, sampleResult(), cfg, time.Second))
	assert.Contains(t, buf.String(), "📋 运营审计分析")
	assert.Contains(t, buf.String(), "📭 宏观经济审计分析")
}

func TestWriteViewsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeViewsCSV(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, viewsCSVHeader, records[0])

	last := records[len(records)-1]
	assert.Equal(t, []string{"aura", "macro", "", "empty", "", "", "", "", "", "message", "未找到宏观经济审计分析数据或数据不完整"}, last)

	var found bool
	for _, rec := range records[1:] {
		if rec[9] == "关键控制点" {
			found = true
			assert.Equal(t, "审批; 复核", rec[10])
		}
	}
	assert.True(t, found, "list field should be flattened")
}

func TestWriteViewResultsJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	var status bytes.Buffer
	stderr = &status
	defer func() { stderr = os.Stderr }()

	t.Run("json", func(t *testing.T) {
		cfg := plainConfig(schema.JSONOut)
		cfg.OutputFile = filepath.Join(dir, "views.json")
		require.NoError(t, WriteViewResults(sampleResult(), cfg, time.Second))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var decoded schema.DashboardResult
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "aura", decoded.Company)
		require.Len(t, decoded.Views, 2)
		assert.Equal(t, schema.EmptyState, decoded.Views[1].State)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg := plainConfig(schema.YAMLOut)
		cfg.OutputFile = filepath.Join(dir, "views.yaml")
		require.NoError(t, WriteViewResults(sampleResult(), cfg, time.Second))

		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var decoded schema.DashboardResult
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, schema.AnalysisLayer, decoded.Layer)
		assert.Equal(t, "operation.departments", decoded.Views[0].Sections[1].Key)
	})

	assert.Contains(t, status.String(), "💾 Wrote JSON")
	assert.Contains(t, status.String(), "💾 Wrote YAML")
}

func TestWriteViewResultsParquet(t *testing.T) {
	var status bytes.Buffer
	stderr = &status
	defer func() { stderr = os.Stderr }()

	cfg := plainConfig(schema.ParquetOut)
	cfg.OutputFile = filepath.Join(t.TempDir(), "views.parquet")
	require.NoError(t, WriteViewResults(sampleResult(), cfg, time.Second))

	for _, path := range []string{cfg.OutputFile, SummaryPath(cfg.OutputFile)} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, status.String(), "views_views.parquet")

	cfg.OutputFile = ""
	assert.Error(t, WriteViewResults(sampleResult(), cfg, time.Second))
}

func TestSummaryPath(t *testing.T) {
	assert.Equal(t, "out/views_views.parquet", SummaryPath("out/views.parquet"))
	assert.Equal(t, "export_views", SummaryPath("export"))
}

func TestPaletteCell(t *testing.T) {
	p := palette{}
	badge := &schema.Badge{Label: "中风险", Severity: 3}

	assert.Equal(t, "中风险", p.cell(schema.Cell{Badge: badge}, 20))
	assert.Equal(t, "财务部 中风险", p.cell(schema.Cell{Text: "财务部", Badge: badge}, 20))
	assert.Equal(t, "abcdefg...", p.cell(schema.Cell{Text: "abcdefghijklmnop"}, 10))
}
