package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	api "go.miloapis.com/email-provider-mailchimp/cmd/api"
	synccmd "go.miloapis.com/email-provider-mailchimp/cmd/sync"
	version "go.miloapis.com/email-provider-mailchimp/cmd/version"
	"go.miloapis.com/email-provider-mailchimp/cmd/webhook"
	"go.miloapis.com/email-provider-mailchimp/internal/config"
)

func main() {
	opts := zap.Options{
		Development: true,
	}
	logFlags := flag.NewFlagSet("log", flag.ExitOnError)
	opts.BindFlags(logFlags)

	rootCmd := &cobra.Command{
		Use:   "email-provider-mailchimp",
		Short: "MailChimp API client and list tooling",
		Long: "Talks to the MailChimp 2.0 API: inspects lists and campaigns, manages members, " +
			"receives list webhooks and reconciles list membership.",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logf.SetLogger(zap.New(zap.UseFlagOptions(&opts)))
		},
	}

	rootCmd.PersistentFlags().String(config.FlagConfig, "", "Config file (default mailchimp.yaml in ., $HOME/.config/mailchimp or /etc/mailchimp)")
	rootCmd.PersistentFlags().String(config.FlagAPIKey, "", "MailChimp API key, e.g. 0123456789abcdef-us2 (env "+config.EnvPrefix+"_API_KEY)")
	rootCmd.PersistentFlags().AddGoFlagSet(logFlags)

	rootCmd.AddCommand(version.NewVersionCommand())
	rootCmd.AddCommand(api.NewPingCommand())
	rootCmd.AddCommand(api.NewListsCommand())
	rootCmd.AddCommand(api.NewCampaignsCommand())
	rootCmd.AddCommand(api.NewSubscribeCommand())
	rootCmd.AddCommand(api.NewUnsubscribeCommand())
	rootCmd.AddCommand(webhook.CreateWebhookCommand())
	rootCmd.AddCommand(synccmd.CreateSyncCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
