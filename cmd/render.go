package cmd

import (
	"github.com/huangsam/auditview/core"
	"github.com/spf13/cobra"
)

// renderCmd renders one domain payload.
var renderCmd = &cobra.Command{
	Use:   "render <domain> [payload.json|-]",
	Short: "Render one audit-analysis payload as a view.",
	Long: `Render a single domain payload into its ordered view sections.

The payload is read from a file, from stdin when the path is "-", or fetched
from the DataLake for --company and --layer when no path is given.

Supported domains: finance, operation, opinion, macro, external.
Payloads that are missing or lack their analysis section render as an empty
view; an unknown domain renders as an empty view naming the domain.

Examples:
  # Render the finance analysis of the default company
  auditview render finance

  # Render a macro payload from a file as JSON
  auditview render macro ./macro_beta_analysis.json --output json

  # Render a payload piped from another tool
  cat opinion.json | auditview render opinion -`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteRender(rootCtx, cfg)
	},
}

// classifyCmd reports the schema variant of a payload.
var classifyCmd = &cobra.Command{
	Use:   "classify <domain> [payload.json|-]",
	Short: "Show which schema variant a payload follows.",
	Long: `Report the schema variant a payload is rendered with and the detection
rule that selected it. Domains with a single shape always report the default
variant.

Examples:
  # Check which shape the DataLake macro payload uses
  auditview classify macro --company beta

  # Classify a local file
  auditview classify external ./external.json --output yaml`,
	Args:    cobra.RangeArgs(1, 2),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteClassify(rootCtx, cfg)
	},
}
