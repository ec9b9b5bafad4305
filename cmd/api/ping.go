package api

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// NewPingCommand checks that the API key works.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity and the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, client, err := setup(cmd)
			if err != nil {
				return err
			}

			msg := client.Ping(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", client.BaseURL(), msg.Msg)
			if !msg.OK() {
				return errors.New("ping failed")
			}
			return nil
		},
	}
}
