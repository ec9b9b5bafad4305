package api

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// NewCampaignsCommand prints campaigns, optionally filtered by list and status.
func NewCampaignsCommand() *cobra.Command {
	var (
		opts   mailchimp.GetCampaignsOptions
		filter mailchimp.CampaignFilter
		output string
	)

	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "List campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, client, err := setup(cmd)
			if err != nil {
				return err
			}

			if filter != (mailchimp.CampaignFilter{}) {
				opts.Filter = &filter
			}
			result, err := client.GetCampaigns(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to get campaigns: %w", err)
			}

			return printResult(cmd.OutOrStdout(), output, result, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tLIST\tSEND TIME")
				for _, c := range result.Data {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.Type, c.Status, c.ListID, c.SendTime)
				}
				for _, e := range result.Errors {
					fmt.Fprintf(w, "\nfilter %s rejected: %s\n", e.Filter, e.Message)
				}
				fmt.Fprintf(w, "\n%d of %d campaigns\n", len(result.Data), result.Total)
			})
		},
	}

	cmd.Flags().StringVar(&filter.ListID, "list-id", "", "Only campaigns sent to this list")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Only campaigns with this status (sent, save, paused, schedule, sending)")
	cmd.Flags().IntVar(&opts.Start, "start", 0, "Page number to return")
	cmd.Flags().IntVar(&opts.Limit, "limit", 25, "Campaigns per page (max 1000)")
	cmd.Flags().StringVar(&opts.SortField, "sort-field", mailchimp.CampaignSortCreateTime, "Sort by create_time, send_time, title or subject")
	cmd.Flags().StringVar(&opts.SortDir, "sort-dir", mailchimp.SortDesc, "Sort direction (ASC or DESC)")
	addOutputFlag(cmd, &output)

	return cmd
}
