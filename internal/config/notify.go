package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// NotifyConfig carries the operator-tunable parts of the notification
// flow. Provider credentials stay in Config; this covers the texts and
// the provider attempt order.
type NotifyConfig struct {
	AcknowledgementText string   `mapstructure:"acknowledgementText"`
	ProviderOrder       []string `mapstructure:"providerOrder"`
}

func DefaultNotifyConfig() NotifyConfig {
	return NotifyConfig{
		AcknowledgementText: "Thanks for your submission! We'll get back to you shortly.",
		ProviderOrder:       []string{"twilio", "whatsapp"},
	}
}

// NotifyConfigHolder serves the current NotifyConfig and hot-reloads it
// when notify.yml changes on disk.
type NotifyConfigHolder struct {
	current atomic.Value // holds NotifyConfig
}

func NewNotifyConfigHolder() (*NotifyConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("notify")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/formbridge")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FORMBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultNotifyConfig()
	v.SetDefault("notify.acknowledgementText", defaults.AcknowledgementText)
	v.SetDefault("notify.providerOrder", defaults.ProviderOrder)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Seed with defaults so a notify.yml that sets only some keys
	// merges with the compiled-in values instead of zeroing the rest.
	cfg := DefaultNotifyConfig()
	if err := v.UnmarshalKey("notify", &cfg); err != nil {
		return nil, err
	}
	if err := validateNotifyConfig(cfg); err != nil {
		return nil, err
	}

	holder := &NotifyConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated := DefaultNotifyConfig()
		if err := v.UnmarshalKey("notify", &updated); err != nil {
			log.Printf("[notify-config] reload failed: %v", err)
			return
		}
		if err := validateNotifyConfig(updated); err != nil {
			log.Printf("[notify-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[notify-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticNotifyConfigHolder pins the holder to cfg with no file
// watching, for tests.
func StaticNotifyConfigHolder(cfg NotifyConfig) *NotifyConfigHolder {
	holder := &NotifyConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *NotifyConfigHolder) Get() NotifyConfig {
	return h.current.Load().(NotifyConfig)
}

func validateNotifyConfig(cfg NotifyConfig) error {
	if strings.TrimSpace(cfg.AcknowledgementText) == "" {
		return errors.New("notify.acknowledgementText cannot be empty")
	}
	if len(cfg.ProviderOrder) == 0 {
		return errors.New("notify.providerOrder cannot be empty")
	}
	for _, name := range cfg.ProviderOrder {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "twilio", "whatsapp":
		default:
			return errors.New("notify.providerOrder: unknown provider " + name)
		}
	}
	return nil
}
