package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"

	"go.miloapis.com/email-provider-mailchimp/internal/config"
	webhook "go.miloapis.com/email-provider-mailchimp/internal/webhook"
)

const shutdownTimeout = 10 * time.Second

// CreateWebhookCommand returns a cobra command that runs the MailChimp list
// webhook receiver.
func CreateWebhookCommand() *cobra.Command {
	var (
		addr, path, secret, mirrorListID string
	)

	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Runs the MailChimp list webhook receiver",
		Long: "Receives MailChimp list webhook deliveries. With --mirror-list-id every " +
			"subscriber change is replayed against that list, otherwise deliveries are logged.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := logf.Log.WithName("webhook")

			cfg, err := config.FromFlags(cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.ValidateWebhook(); err != nil {
				return err
			}

			client, err := cfg.NewClient()
			if err != nil {
				return err
			}

			var wh *webhook.Webhook
			if cfg.Webhook.MirrorListID != "" {
				log.Info("Mirroring list events", "mirrorListID", cfg.Webhook.MirrorListID)
				wh = webhook.NewListMirrorWebhook(client, cfg.Webhook.MirrorListID, cfg.Webhook.Secret)
			} else {
				log.Info("No mirror list configured, deliveries are only logged")
				wh = webhook.NewAckWebhook(cfg.Webhook.Secret)
			}
			wh.Endpoint = cfg.Webhook.Path

			ready := func(r *http.Request) error {
				if msg := client.Ping(r.Context()); !msg.OK() {
					return fmt.Errorf("ping: %s", msg.Msg)
				}
				return nil
			}

			srv := &http.Server{
				Addr:              cfg.Webhook.Addr,
				Handler:           webhook.NewRouter(log, wh, ready),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx := signals.SetupSignalHandler()
			errCh := make(chan error, 1)
			go func() {
				log.Info("Starting webhook server", "addr", srv.Addr, "path", wh.Endpoint)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("webhook server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("Shutting down webhook server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down webhook server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address the receiver listens on")
	cmd.Flags().StringVar(&path, "path", webhook.DefaultEndpoint, "Path the webhook is served at")
	cmd.Flags().StringVar(&secret, "secret", "", "Shared secret expected in the key query parameter")
	cmd.Flags().StringVar(&mirrorListID, "mirror-list-id", "", "List that receives every subscriber change")

	return cmd
}
