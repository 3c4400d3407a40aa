package contract

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/auditview/schema"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorBadge(t *testing.T) {
	tests := []struct {
		name  string
		badge *schema.Badge
		label string
	}{
		{"nil badge", nil, ""},
		{"critical", &schema.Badge{Label: "极高风险", Severity: 5}, "极高风险"},
		{"high", &schema.Badge{Label: "高风险", Severity: 4}, "高风险"},
		{"medium", &schema.Badge{Label: "中风险", Severity: 3}, "中风险"},
		{"low", &schema.Badge{Label: "低风险", Severity: 1}, "低风险"},
		{"unranked positive", &schema.Badge{Label: "良好", Level: string(schema.PositiveTone)}, "良好"},
		{"unranked unknown", &schema.Badge{Label: "待定"}, "待定"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorBadge(tt.badge)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestGetColorToneNeutral(t *testing.T) {
	assert.Equal(t, "plain", GetColorTone(schema.NeutralTone, "plain"))
}

func TestGetColorToneDisabled(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	for _, tone := range []schema.Tone{schema.PositiveTone, schema.WarningTone, schema.NegativeTone} {
		assert.Equal(t, "12.5%", GetColorTone(tone, "12.5%"), string(tone))
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "view.json")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		_, err := SelectOutputFile(filepath.Join(t.TempDir(), "nope", "view.json"))
		assert.Error(t, err)
	})
}

func TestGetDatalakeDBFilePath(t *testing.T) {
	path := GetDatalakeDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".auditview_datalake.db"))
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		expected string
	}{
		{"short text", "营业收入", 10, "营业收入"},
		{"exact width", "abcdef", 6, "abcdef"},
		{"truncated ascii", "abcdefghij", 6, "abc..."},
		{"truncated runes", "流动比率与速动比率", 5, "流动..."},
		{"tiny width keeps text", "abcdef", 3, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.text, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input     string
		expected  bool
		expectErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, logrus.WarnLevel)

	log.Info("hidden")
	log.WithField("domain", "finance").Warn("render failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "render failed")
	assert.Contains(t, out, "domain=finance")
}
