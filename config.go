package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/goerr/v2"
	"github.com/saritsop/portfolio/accordion"
	"github.com/saritsop/portfolio/reveal"
)

// Config is read from the environment. A .env file in the working
// directory is loaded first.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"auto"`

	// Images, thumbnails and the résumé are served from AssetsDir under AssetsPath.
	AssetsDir  string `env:"ASSETS_DIR" envDefault:"./public"`
	AssetsPath string `env:"ASSETS_PATH" envDefault:"/assets"`

	RevealThreshold  float64 `env:"REVEAL_THRESHOLD" envDefault:"0.12"`
	RevealRootMargin string  `env:"REVEAL_ROOT_MARGIN" envDefault:"0px 0px -10% 0px"`
	RevealOnce       bool    `env:"REVEAL_ONCE" envDefault:"true"`

	AccordionPolicy accordion.Policy `env:"ACCORDION_POLICY" envDefault:"multi"`

	// Page state is dropped after PageTTL without any event from the page.
	PageTTL       time.Duration `env:"PAGE_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"PAGE_SWEEP_INTERVAL" envDefault:"1m"`
	// At most PageMax pages are held; the least recently seen goes first.
	PageMax int `env:"PAGE_MAX" envDefault:"1000"`

	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	To   string `env:"TO_EMAIL"`
}

// Enabled reports whether the contact form can deliver mail.
func (c SMTPConfig) Enabled() bool {
	return c.User != "" && c.Pass != "" && c.To != ""
}

func (c SMTPConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", c.Host),
		slog.String("port", c.Port),
		slog.Bool("enabled", c.Enabled()),
	)
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, goerr.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		return goerr.New("invalid port", goerr.V("port", c.Port))
	}
	if c.PageTTL <= 0 {
		return goerr.New("page ttl must be positive", goerr.V("ttl", c.PageTTL))
	}
	if c.PageMax <= 0 {
		return goerr.New("page max must be positive", goerr.V("max", c.PageMax))
	}
	if c.SweepInterval <= 0 {
		return goerr.New("sweep interval must be positive", goerr.V("interval", c.SweepInterval))
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return goerr.New("invalid gin mode", goerr.V("mode", c.GinMode))
	}
	switch c.LogFormat {
	case "auto", "console", "json", "":
	default:
		return goerr.New("invalid log format", goerr.V("format", c.LogFormat))
	}
	if err := c.RevealOptions().Validate(); err != nil {
		return goerr.Wrap(err, "invalid reveal settings")
	}
	return nil
}

// RevealOptions are the options shared by every revealed section. Each
// section adds its own delay.
func (c Config) RevealOptions() reveal.Options {
	return reveal.Options{
		Threshold:  c.RevealThreshold,
		RootMargin: c.RevealRootMargin,
		Once:       c.RevealOnce,
	}
}

func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.Port),
		slog.String("gin_mode", c.GinMode),
		slog.String("assets_dir", c.AssetsDir),
		slog.Float64("reveal_threshold", c.RevealThreshold),
		slog.String("reveal_root_margin", c.RevealRootMargin),
		slog.Bool("reveal_once", c.RevealOnce),
		slog.String("accordion_policy", c.AccordionPolicy.String()),
		slog.Duration("page_ttl", c.PageTTL),
		slog.Int("page_max", c.PageMax),
		slog.Any("smtp", c.SMTP),
	)
}
