package api

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// NewListsCommand prints the account's lists.
func NewListsCommand() *cobra.Command {
	var (
		opts   mailchimp.GetListsOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List the account's mailing lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, client, err := setup(cmd)
			if err != nil {
				return err
			}

			result, err := client.GetLists(ctx, &opts)
			if err != nil {
				return fmt.Errorf("failed to get lists: %w", err)
			}

			return printResult(cmd.OutOrStdout(), output, result, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tMEMBERS\tUNSUBSCRIBED\tCREATED")
				for _, l := range result.Data {
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", l.ID, l.Name, l.Stats.MemberCount, l.Stats.UnsubscribeCount, l.DateCreated)
				}
				fmt.Fprintf(w, "\n%d of %d lists\n", len(result.Data), result.Total)
			})
		},
	}

	cmd.Flags().IntVar(&opts.Start, "start", 0, "Page number to return")
	cmd.Flags().IntVar(&opts.Limit, "limit", 25, "Lists per page (max 100)")
	cmd.Flags().StringVar(&opts.SortField, "sort-field", mailchimp.ListSortCreated, "Sort by created or web")
	cmd.Flags().StringVar(&opts.SortDir, "sort-dir", mailchimp.SortDesc, "Sort direction (ASC or DESC)")
	addOutputFlag(cmd, &output)

	return cmd
}
