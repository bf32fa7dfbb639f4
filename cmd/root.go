package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var prettyFlag bool

var rootCmd = &cobra.Command{
	Use:   "analytics-gateway",
	Short: "Analytics gateway for GA4 and Mailchimp data",
	Long: `analytics-gateway fetches reports from Google Analytics 4 and Mailchimp
and serves them as uniform JSON for BI tools.

Run the HTTP gateway:
  analytics-gateway serve

One-off queries from a terminal:
  analytics-gateway ga4 --property=123456 --metrics=activeUsers,sessions
  analytics-gateway mailchimp audiences

Configuration is read from the environment and from a .env file.`,
	SilenceUsage: true,
}

// Execute is the entrypoint called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&prettyFlag, "pretty", false, "Force pretty-printed JSON output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ga4Cmd)
	rootCmd.AddCommand(mailchimpCmd)
}
