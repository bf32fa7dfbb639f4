package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"analytics-gateway/internal/config"
	"analytics-gateway/internal/service"
)

var mailchimpCmd = &cobra.Command{
	Use:   "mailchimp",
	Short: "Query Mailchimp with MAILCHIMP_API_KEY",
}

var mailchimpAudiencesCmd = &cobra.Command{
	Use:   "audiences",
	Short: "List audiences and the total subscriber count",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMailchimpService()
		if err != nil {
			return err
		}
		resp, err := svc.Audiences(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}

var mailchimpCampaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Summarize opens and clicks of sent campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newMailchimpService()
		if err != nil {
			return err
		}
		resp, err := svc.CampaignSummaries(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(resp)
	},
}

func init() {
	mailchimpCmd.AddCommand(mailchimpAudiencesCmd)
	mailchimpCmd.AddCommand(mailchimpCampaignsCmd)
}

func newMailchimpService() (service.MailchimpService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	api, err := newMailchimpAPI(cfg, newTransport())
	if err != nil {
		return nil, err
	}
	return service.NewMailchimpService(api, nil, cliLogger()), nil
}
