package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"go.miloapis.com/email-provider-mailchimp/pkg/version"
)

// NewVersionCommand creates the version subcommand
func NewVersionCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVersion(cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func printVersion(w io.Writer, output string) error {
	info := version.Get()

	var data []byte
	var err error
	switch output {
	case "json":
		data, err = json.MarshalIndent(info, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(info)
	case "text":
		data = []byte(info.String())
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal version info: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
