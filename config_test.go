package main

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/saritsop/portfolio/accordion"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	gt.NoError(t, err).Required()

	gt.Equal(t, cfg.Port, "8080")
	gt.Equal(t, cfg.AssetsPath, "/assets")
	gt.Equal(t, cfg.AccordionPolicy, accordion.MultiOpen)
	gt.Equal(t, cfg.PageTTL, 30*time.Minute)
	gt.Equal(t, cfg.PageMax, 1000)
	gt.Equal(t, cfg.GinMode, "release")

	opts := cfg.RevealOptions()
	gt.Equal(t, opts.Threshold, 0.12)
	gt.Equal(t, opts.RootMargin, "0px 0px -10% 0px")
	gt.True(t, opts.Once)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACCORDION_POLICY", "single")
	t.Setenv("REVEAL_ONCE", "false")
	t.Setenv("REVEAL_THRESHOLD", "0.5")
	t.Setenv("PAGE_TTL", "5m")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("TO_EMAIL", "inbox@example.com")

	cfg, err := loadConfig()
	gt.NoError(t, err).Required()

	gt.Equal(t, cfg.Port, "9090")
	gt.Equal(t, cfg.AccordionPolicy, accordion.SingleOpen)
	gt.False(t, cfg.RevealOnce)
	gt.Equal(t, cfg.RevealThreshold, 0.5)
	gt.Equal(t, cfg.PageTTL, 5*time.Minute)
	gt.True(t, cfg.SMTP.Enabled())
	gt.Equal(t, cfg.SMTP.Host, "smtp.gmail.com")
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string][2]string{
		"bad policy":    {"ACCORDION_POLICY", "all"},
		"bad threshold": {"REVEAL_THRESHOLD", "1.2"},
		"NaN threshold": {"REVEAL_THRESHOLD", "NaN"},
		"bad gin mode":  {"GIN_MODE", "prod"},
		"zero page max": {"PAGE_MAX", "0"},
		"bad margin":    {"REVEAL_ROOT_MARGIN", "10em"},
		"bad port":      {"PORT", "http"},
		"bad format":    {"LOG_FORMAT", "xml"},
		"zero ttl":      {"PAGE_TTL", "0s"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := loadConfig()
			gt.Error(t, err)
		})
	}
}
