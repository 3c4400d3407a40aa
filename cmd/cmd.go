// Package cmd defines the command-line interface for auditview.
package cmd

import (
	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored badges in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in status lines (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().StringP("company", "c", contract.DefaultCompany, "Company whose DataLake payloads are rendered")
	rootCmd.PersistentFlags().String("layer", string(schema.AnalysisLayer), "DataLake layer: raw or feature or analysis")
	rootCmd.PersistentFlags().String("source-backend", string(schema.FileBackend), "Payload source: file or sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("source-dir", ".", "DataLake directory for the file source")
	rootCmd.PersistentFlags().String("source-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("source-table", contract.DefaultTable, "DataLake table for database sources")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of dashboardCmd to Viper
	dashboardCmd.Flags().String("domains", "", "Comma-separated list of domains to render (default all)")
	dashboardCmd.Flags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	if err := viper.BindPFlags(dashboardCmd.Flags()); err != nil {
		contract.LogFatal("Error binding dashboard flags", err)
	}
}
