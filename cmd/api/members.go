package api

import (
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/utils/ptr"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// NewSubscribeCommand subscribes one address to a list.
func NewSubscribeCommand() *cobra.Command {
	var (
		listID, email, emailType string
		doubleOptIn, update      bool
		mergeFields              map[string]string
	)

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Subscribe an email address to a list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, client, err := setup(cmd)
			if err != nil {
				return err
			}

			opts := &mailchimp.SubscribeOptions{
				EmailType:      emailType,
				DoubleOptIn:    ptr.To(doubleOptIn),
				UpdateExisting: update,
			}
			if len(mergeFields) > 0 {
				fields := make(map[string]any, len(mergeFields))
				for k, v := range mergeFields {
					fields[k] = v
				}
				opts.MergeVars = &mailchimp.MergeVars{Fields: fields}
			}

			member, err := client.Subscribe(ctx, listID, mailchimp.EmailParameter{Email: email}, opts)
			if mailchimp.IsAlreadySubscribed(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already subscribed to %s\n", email, listID)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to subscribe %s: %w", email, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "subscribed %s to %s (euid %s, leid %s)\n", member.Email, listID, member.EUID, member.LEID)
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list-id", "", "List to subscribe to")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&emailType, "email-type", mailchimp.EmailTypeHTML, "Preferred email type (html or text)")
	cmd.Flags().BoolVar(&doubleOptIn, "double-opt-in", true, "Send a confirmation email first")
	cmd.Flags().BoolVar(&update, "update-existing", false, "Update the member if already subscribed")
	cmd.Flags().StringToStringVar(&mergeFields, "merge", nil, "Merge fields, e.g. --merge FNAME=Ada,LNAME=Lovelace")
	_ = cmd.MarkFlagRequired("list-id")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// NewUnsubscribeCommand removes one address from a list.
func NewUnsubscribeCommand() *cobra.Command {
	var (
		listID, email         string
		deleteMember, goodbye bool
		notify                bool
	)

	cmd := &cobra.Command{
		Use:   "unsubscribe",
		Short: "Unsubscribe an email address from a list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, client, err := setup(cmd)
			if err != nil {
				return err
			}

			_, err = client.Unsubscribe(ctx, listID, mailchimp.EmailParameter{Email: email}, &mailchimp.UnsubscribeOptions{
				DeleteMember: deleteMember,
				SendGoodbye:  ptr.To(goodbye),
				SendNotify:   ptr.To(notify),
			})
			if mailchimp.IsNotSubscribed(err) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not subscribed to %s\n", email, listID)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to unsubscribe %s: %w", email, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "unsubscribed %s from %s\n", email, listID)
			return nil
		},
	}

	cmd.Flags().StringVar(&listID, "list-id", "", "List to unsubscribe from")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().BoolVar(&deleteMember, "delete", false, "Delete the member instead of marking it unsubscribed")
	cmd.Flags().BoolVar(&goodbye, "send-goodbye", true, "Send the goodbye email")
	cmd.Flags().BoolVar(&notify, "send-notify", true, "Notify the list's unsubscribe address")
	_ = cmd.MarkFlagRequired("list-id")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
