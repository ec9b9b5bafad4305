package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/wait"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"go.miloapis.com/email-provider-mailchimp/internal/config"
	"go.miloapis.com/email-provider-mailchimp/internal/controller"
)

// CreateSyncCommand returns a cobra command that reconciles a list's
// subscribed members against a members file, once or every --interval.
func CreateSyncCommand() *cobra.Command {
	var (
		file, listID         string
		pageSize             int
		deleteMember, dryRun bool
		interval             time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile list members against a members file",
		Long: "Subscribes every member of --file that is missing from the list and " +
			"unsubscribes (or with --delete-member deletes) subscribed members the file does not name.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logf.Log.WithName("sync")

			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}

			desired, err := controller.LoadMembersFile(file)
			if err != nil {
				return err
			}
			if cfg.Sync.ListID == "" {
				cfg.Sync.ListID = desired.ListID
			}
			if err := cfg.ValidateSync(); err != nil {
				return err
			}

			client, err := cfg.NewClient()
			if err != nil {
				return err
			}

			r := &controller.MemberReconciler{
				MailChimp:    client,
				ListID:       cfg.Sync.ListID,
				PageSize:     cfg.Sync.PageSize,
				DeleteMember: cfg.Sync.DeleteMember,
				DryRun:       dryRun,
			}

			run := func(ctx context.Context) error {
				result, err := r.Reconcile(ctx, desired.Members)
				fmt.Fprintf(cmd.OutOrStdout(), "list %s: %d existing, %d added, %d updated, %d removed, %d failed\n",
					r.ListID, result.Existing, result.Added, result.Updated, result.Removed, result.Failed())
				return err
			}

			ctx := logf.IntoContext(cmd.Context(), log)
			if interval <= 0 {
				return run(ctx)
			}

			ctx = logf.IntoContext(signals.SetupSignalHandler(), log)
			log.Info("Reconciling periodically", "interval", interval)
			wait.UntilWithContext(ctx, func(ctx context.Context) {
				if err := run(ctx); err != nil {
					log.Error(err, "Reconciliation failed")
				}
			}, interval)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "members.yaml", "Members file (YAML or JSON)")
	cmd.Flags().StringVar(&listID, "list-id", "", "List to reconcile, overrides the file's listId")
	cmd.Flags().IntVar(&pageSize, "page-size", controller.DefaultPageSize, "Members read per page (max 100)")
	cmd.Flags().BoolVar(&deleteMember, "delete-member", false, "Delete extra members instead of unsubscribing them")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only report what would change")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Repeat every interval until interrupted; 0 runs once")

	return cmd
}
