package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultBillingConfig(t *testing.T) {
	cfg := DefaultBillingConfig()
	assert.Equal(t, "IVA", cfg.TaxCode)
	assert.Equal(t, "GAS", cfg.InvoicePrefix)
	assert.False(t, cfg.SchedulerEnabled)
	assert.Equal(t, time.Hour, cfg.SchedulerInterval)
	assert.NoError(t, validateBillingConfig(cfg))
}

func TestValidateBillingConfig(t *testing.T) {
	cfg := DefaultBillingConfig()

	cfg.TaxCode = " "
	assert.Error(t, validateBillingConfig(cfg))

	cfg = DefaultBillingConfig()
	cfg.InvoicePrefix = ""
	assert.Error(t, validateBillingConfig(cfg))

	cfg = DefaultBillingConfig()
	cfg.SchedulerInterval = 0
	assert.Error(t, validateBillingConfig(cfg))
}

func TestStaticBillingConfig(t *testing.T) {
	cfg := DefaultBillingConfig()
	cfg.InvoicePrefix = "TEST"

	holder := StaticBillingConfig(cfg)
	assert.Equal(t, "TEST", holder.Get().InvoicePrefix)
}
