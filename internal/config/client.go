package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"go.miloapis.com/email-provider-mailchimp/internal/observability"
	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// FlagConfig and FlagAPIKey are the persistent flags of the root command.
const (
	FlagConfig = "config"
	FlagAPIKey = "api-key"
)

// FromFlags loads the configuration named by --config, letting the command's
// flags override it.
func FromFlags(flags *pflag.FlagSet) (*Config, error) {
	path, err := flags.GetString(FlagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to read --%s: %w", FlagConfig, err)
	}
	return Load(path, flags)
}

// NewClient builds a MailChimp client from the configuration, using an
// instrumented and optionally retrying transport.
func (c *Config) NewClient(opts ...mailchimp.ClientOption) (*mailchimp.Client, error) {
	options := []mailchimp.ClientOption{
		mailchimp.WithHTTPClient(observability.NewHTTPClient(c.Timeout, c.Retries)),
	}
	if c.BaseURL != "" {
		options = append(options, mailchimp.WithBaseURL(c.BaseURL))
	}
	options = append(options, opts...)

	client, err := mailchimp.NewSDK(c.APIKey, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MailChimp client: %w", err)
	}
	return client, nil
}
