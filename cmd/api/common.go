package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/yaml"

	"go.miloapis.com/email-provider-mailchimp/internal/config"
	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// setup loads the configuration for cmd and returns a client plus a context
// carrying the command's logger, so client calls are logged under it.
func setup(cmd *cobra.Command) (context.Context, *mailchimp.Client, error) {
	cfg, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := cfg.NewClient()
	if err != nil {
		return nil, nil, err
	}

	log := logf.Log.WithName(cmd.Name())
	return logf.IntoContext(cmd.Context(), log), client, nil
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "table", "Output format (table, json, yaml)")
}

// printResult writes v as json or yaml, or calls table with a tabwriter.
func printResult(w io.Writer, output string, v any, table func(*tabwriter.Writer)) error {
	switch output {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}
