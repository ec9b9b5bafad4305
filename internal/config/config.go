package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MAILCHIMP_API_KEY
// or MAILCHIMP_WEBHOOK_SECRET.
const EnvPrefix = "MAILCHIMP"

// Config holds all configuration (file + env + flag overrides).
type Config struct {
	APIKey  string        `mapstructure:"api_key" validate:"required"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Retries int           `mapstructure:"retries" validate:"gte=0,lte=10"`

	Webhook WebhookConfig `mapstructure:"webhook"`
	Sync    SyncConfig    `mapstructure:"sync"`
}

// WebhookConfig configures the webhook receiver.
type WebhookConfig struct {
	Addr         string `mapstructure:"addr" validate:"required"`
	Path         string `mapstructure:"path" validate:"required,startswith=/"`
	Secret       string `mapstructure:"secret"`
	MirrorListID string `mapstructure:"mirror_list_id"`
}

// SyncConfig configures the member reconciler.
type SyncConfig struct {
	ListID       string `mapstructure:"list_id"`
	PageSize     int    `mapstructure:"page_size" validate:"gte=1,lte=100"`
	DeleteMember bool   `mapstructure:"delete_member"`
}

var keys = []string{
	"api_key", "base_url", "timeout", "retries",
	"webhook.addr", "webhook.path", "webhook.secret", "webhook.mirror_list_id",
	"sync.list_id", "sync.page_size", "sync.delete_member",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("retries", 0)
	v.SetDefault("webhook.addr", ":8080")
	v.SetDefault("webhook.path", "/webhooks/mailchimp")
	v.SetDefault("sync.page_size", 100)
}

// Load reads the configuration. path names an explicit config file; when it is
// empty mailchimp.yaml is looked up in the working directory,
// $HOME/.config/mailchimp and /etc/mailchimp, and a missing file is not an
// error. Flags that were set on the command line win over file and
// environment values; they are matched to keys by replacing "-" with "_".
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mailchimp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mailchimp")
		v.AddConfigPath("/etc/mailchimp")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about when
	// unmarshalling, so bind every key explicitly.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if flags != nil {
		for _, key := range keys {
			flag := flags.Lookup(flagName(key))
			if flag == nil || !flag.Changed {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// flagName maps a config key to its command line flag: "sync.list_id" is
// --list-id and "api_key" is --api-key.
func flagName(key string) string {
	if i := strings.LastIndex(key, "."); i >= 0 {
		key = key[i+1:]
	}
	return strings.ReplaceAll(key, "_", "-")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ValidateWebhook additionally requires the shared secret the receiver checks
// deliveries against.
func (c *Config) ValidateWebhook() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Webhook.Secret == "" {
		return fmt.Errorf("invalid config: webhook.secret is required (set %s_WEBHOOK_SECRET)", EnvPrefix)
	}
	return nil
}

// ValidateSync additionally requires the list to reconcile.
func (c *Config) ValidateSync() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Sync.ListID == "" {
		return fmt.Errorf("invalid config: sync.list_id is required")
	}
	return nil
}
