package cmd

import (
	"github.com/huangsam/auditview/core"
	"github.com/spf13/cobra"
)

// dashboardCmd renders every domain of one company.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render all audit domains of one company.",
	Long: `Fetch the payload of every audit domain for one company from the DataLake
and render them concurrently. Views are printed in domain order; a missing
payload shows as an empty view, while any other fetch error aborts.

Examples:
  # Render the whole dashboard of a sample company
  auditview dashboard --company crisis

  # Render two domains from a SQLite DataLake
  auditview dashboard --source-backend sqlite --domains finance,macro

  # Export flattened rows for later analysis
  auditview dashboard --output parquet --output-file views.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteDashboard(rootCtx, cfg)
	},
}

// domainsCmd lists the supported domains.
var domainsCmd = &cobra.Command{
	Use:     "domains",
	Short:   "List supported domains, variants and marker keys.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteDomains(rootCtx, cfg)
	},
}
