package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BillingConfig holds operator-tunable billing parameters.
type BillingConfig struct {
	// TaxCode is the tax applied to every invoice base amount.
	TaxCode string `mapstructure:"taxCode"`
	// InvoicePrefix is the leading segment of generated invoice numbers.
	InvoicePrefix string `mapstructure:"invoicePrefix"`
	// SchedulerEnabled toggles the periodic previous-month billing run.
	SchedulerEnabled bool `mapstructure:"schedulerEnabled"`
	// SchedulerInterval is how often the scheduler wakes up.
	SchedulerInterval time.Duration `mapstructure:"schedulerInterval"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		TaxCode:           "IVA",
		InvoicePrefix:     "GAS",
		SchedulerEnabled:  false,
		SchedulerInterval: time.Hour,
	}
}

// BillingConfigHolder exposes the current billing config and hot-reloads it
// when the backing file changes.
type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/gasbilling")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GASBILLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultBillingConfig()
	v.SetDefault("billing.taxCode", defaults.TaxCode)
	v.SetDefault("billing.invoicePrefix", defaults.InvoicePrefix)
	v.SetDefault("billing.schedulerEnabled", defaults.SchedulerEnabled)
	v.SetDefault("billing.schedulerInterval", defaults.SchedulerInterval)

	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}

	var cfg BillingConfig
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			var updated BillingConfig
			if err := v.UnmarshalKey("billing", &updated); err != nil {
				log.Printf("[billing-config] reload failed: %v", err)
				return
			}
			if err := validateBillingConfig(updated); err != nil {
				log.Printf("[billing-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
			log.Printf("[billing-config] reloaded from %s", e.Name)
		})
	}

	return holder, nil
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

// StaticBillingConfig returns a holder pinned to cfg, for tests and tools.
func StaticBillingConfig(cfg BillingConfig) *BillingConfigHolder {
	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateBillingConfig(cfg BillingConfig) error {
	if strings.TrimSpace(cfg.TaxCode) == "" {
		return errors.New("billing.taxCode cannot be empty")
	}
	if strings.TrimSpace(cfg.InvoicePrefix) == "" {
		return errors.New("billing.invoicePrefix cannot be empty")
	}
	if cfg.SchedulerInterval <= 0 {
		return errors.New("billing.schedulerInterval must be positive")
	}
	return nil
}
