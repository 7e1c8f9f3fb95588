package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone  = "UTC"
	defaultPort      = 10000
	configPathEnv    = "NEWS_SENTINEL_CONFIG"
	databaseDSNEnv   = "DATABASE_DSN"
	telegramTokenEnv = "TELEGRAM_BOT_TOKEN"
	channelIDsEnv    = "CHANNEL_ID1"
	portEnv          = "PORT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Server    ServerConfig    `yaml:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Relevance RelevanceConfig `yaml:"relevance"`
	Sources   []SourceConfig  `yaml:"sources"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig describes the Postgres connection for the seen store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken   string   `yaml:"botToken"`
	ChannelIDs []string `yaml:"channelIds"`
}

// ServerConfig describes the liveness HTTP endpoint.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// SchedulerConfig defines when poll cycles run.
type SchedulerConfig struct {
	// Spec is a robfig/cron schedule expression; "@every 15m" by default.
	Spec     string         `yaml:"spec"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// PipelineConfig tunes the orchestrator.
type PipelineConfig struct {
	// RecencyDays drops candidates published more than N days ago.
	RecencyDays int `yaml:"recencyDays"`
	// PacingMillis is the delay after each delivery attempt.
	PacingMillis int `yaml:"pacingMillis"`
	// TargetLang is the translation target, e.g. "ru".
	TargetLang string `yaml:"targetLang"`
}

// RecencyWindow returns the recency cutoff as a duration.
func (p PipelineConfig) RecencyWindow() time.Duration {
	return time.Duration(p.RecencyDays) * 24 * time.Hour
}

// PacingDelay returns the inter-item pacing as a duration.
func (p PipelineConfig) PacingDelay() time.Duration {
	return time.Duration(p.PacingMillis) * time.Millisecond
}

// RelevanceConfig optionally overrides the built-in pattern set.
type RelevanceConfig struct {
	Patterns []string `yaml:"patterns"`
}

// SourceConfig describes a single source with its fetch strategy.
type SourceConfig struct {
	Name     string `yaml:"name"`
	Strategy string `yaml:"strategy"`
	URL      string `yaml:"url"`
	// Selector, BaseURL, Lead, Title, HostContains, HrefContains apply to
	// the page strategy only. Title replaces anchor text with a fixed
	// string; HrefContains requires every substring to appear in the href.
	Selector     string   `yaml:"selector"`
	BaseURL      string   `yaml:"baseUrl"`
	Lead         string   `yaml:"lead"`
	Title        string   `yaml:"title"`
	HostContains string   `yaml:"hostContains"`
	HrefContains []string `yaml:"hrefContains"`
	// Limit caps how many candidates the source yields per cycle.
	Limit int `yaml:"limit"`
	// PathFilter keeps only identities containing at least one substring;
	// it is applied by the orchestrator, not the adapter.
	PathFilter []string `yaml:"pathFilter"`
	// SkipRelevance bypasses the relevance filter for curated sources
	// whose every item is on-topic by construction.
	SkipRelevance bool `yaml:"skipRelevance"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultConfig().Sources
	}

	return cfg
}

// Validate checks the startup-fatal requirements: delivery credential,
// destination channels and the store DSN must all be present.
func (c Config) Validate() error {
	var missing []string
	if c.Telegram.BotToken == "" {
		missing = append(missing, telegramTokenEnv)
	}
	if len(c.Telegram.ChannelIDs) == 0 {
		missing = append(missing, channelIDsEnv)
	}
	if c.Database.DSN == "" {
		missing = append(missing, databaseDSNEnv)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid liveness port %d", c.Server.Port)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Telegram.BotToken = v
	}

	if v := os.Getenv(channelIDsEnv); v != "" {
		c.Telegram.ChannelIDs = splitChannelIDs(v)
	}

	if v := os.Getenv(portEnv); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		} else {
			log.Printf("config: invalid %s value %q, keeping %d", portEnv, v, c.Server.Port)
		}
	}
}

func splitChannelIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Telegram.BotToken != "" {
		base.Telegram.BotToken = override.Telegram.BotToken
	}
	if len(override.Telegram.ChannelIDs) > 0 {
		base.Telegram.ChannelIDs = override.Telegram.ChannelIDs
	}

	if override.Server.Port != 0 {
		base.Server.Port = override.Server.Port
	}

	if override.Scheduler.Spec != "" {
		base.Scheduler.Spec = override.Scheduler.Spec
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Pipeline.RecencyDays != 0 {
		base.Pipeline.RecencyDays = override.Pipeline.RecencyDays
	}
	if override.Pipeline.PacingMillis != 0 {
		base.Pipeline.PacingMillis = override.Pipeline.PacingMillis
	}
	if override.Pipeline.TargetLang != "" {
		base.Pipeline.TargetLang = override.Pipeline.TargetLang
	}

	if len(override.Relevance.Patterns) > 0 {
		base.Relevance.Patterns = override.Relevance.Patterns
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Database:  DatabaseConfig{DSN: ""},
		Telegram:  TelegramConfig{},
		Server:    ServerConfig{Port: defaultPort},
		Scheduler: SchedulerConfig{Spec: "@every 15m", Timezone: defaultTimezone, location: tz},
		Pipeline:  PipelineConfig{RecencyDays: 7, PacingMillis: 500, TargetLang: "ru"},
		Logging:   LoggingConfig{Level: "info"},
		Sources:   defaultSources(),
	}
}

func defaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "E3G", Strategy: "rss", URL: "https://www.e3g.org/feed/"},
		{Name: "Foreign Affairs", Strategy: "rss", URL: "https://www.foreignaffairs.com/rss.xml"},
		{Name: "Reuters Institute", Strategy: "rss", URL: "https://reutersinstitute.politics.ox.ac.uk/feed"},
		{Name: "Bruegel", Strategy: "rss", URL: "https://www.bruegel.org/rss"},
		{Name: "Chatham House", Strategy: "rss", URL: "https://www.chathamhouse.org/feed"},
		{Name: "CSIS", Strategy: "rss", URL: "https://www.csis.org/rss.xml"},
		{Name: "Atlantic Council", Strategy: "rss", URL: "https://www.atlanticcouncil.org/feed/"},
		{Name: "RAND", Strategy: "rss", URL: "https://www.rand.org/rss/recent.xml"},
		{Name: "CFR", Strategy: "rss", URL: "https://www.cfr.org/rss.xml"},
		{Name: "Carnegie", Strategy: "rss", URL: "https://carnegieendowment.org/rss"},
		{Name: "ECONOMIST", Strategy: "rss", URL: "https://www.economist.com/leaders/rss.xml"},
		{Name: "BLOOMBERG", Strategy: "rss", URL: "https://www.bloomberg.com/politics/feeds/site.xml"},
		{Name: "WEF", Strategy: "rss", URL: "https://www.weforum.org/feeds/root.xml"},
		{
			Name:       "BBCNEWS",
			Strategy:   "rss",
			URL:        "https://feeds.bbci.co.uk/news/world/rss.xml",
			PathFilter: []string{"/russia/", "/ukraine/", "/europe/"},
		},
		{
			Name:     "GOODJ",
			Strategy: "page",
			URL:      "https://goodjudgment.com/open-questions/",
			Selector: ".question-title a",
			BaseURL:  "https://goodjudgment.com",
			Lead:     "Superforecasting question",
		},
		{
			Name:     "JHCHS",
			Strategy: "page",
			URL:      "https://www.centerforhealthsecurity.org",
			Selector: "h2 a, h3 a",
			BaseURL:  "https://www.centerforhealthsecurity.org",
			Lead:     "Report from Johns Hopkins",
		},
		{Name: "META", Strategy: "metaculus", URL: "https://www.metaculus.com", Limit: 10},
		{
			Name:          "DNI",
			Strategy:      "page",
			URL:           "https://www.dni.gov",
			Selector:      "a",
			BaseURL:       "https://www.dni.gov",
			HrefContains:  []string{"global", "trend"},
			Title:         "DNI Global Trends Report",
			Lead:          "US intelligence forecast",
			Limit:         1,
			SkipRelevance: true,
		},
		{
			Name:     "BBCFUTURE",
			Strategy: "page",
			URL:      "https://www.bbc.com/future",
			Selector: `a[href*="/future/article/"]`,
			BaseURL:  "https://www.bbc.com",
			Lead:     "From BBC Future",
		},
		{
			Name:         "FUTTL",
			Strategy:     "page",
			URL:          "https://www.futuretimeline.net",
			Selector:     "li a",
			BaseURL:      "https://www.futuretimeline.net",
			HostContains: "futuretimeline.net",
			Lead:         "Long-term forecast",
		},
	}
}
