package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone    = "UTC"
	configPathEnv      = "NEWSSIFT_CONFIG"
	databaseDSNEnv     = "DATABASE_DSN"
	serviceTokenEnv    = "NEWSSIFT_SERVICE_TOKEN"
	summarizerKeyEnv   = "SUMMARIZER_API_KEY"
	telegramTokenEnv   = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv  = "TELEGRAM_CHAT_ID"
	minScrapeInterval  = 5
	maxScrapeInterval  = 1440
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Database      DatabaseConfig     `yaml:"database"`
	Server        ServerConfig       `yaml:"server"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Scraper       ScraperConfig      `yaml:"scraper"`
	Balancer      BalancerConfig     `yaml:"balancer"`
	Summarizer    SummarizerConfig   `yaml:"summarizer"`
	Notifications NotificationConfig `yaml:"notifications"`
	Categories    []CategoryConfig   `yaml:"categories"`
	SourceHints   []SourceHintConfig `yaml:"sourceHints"`
}

// LoggingConfig controls log verbosity and output format ("text" or "json").
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ServerConfig describes the HTTP trigger surface.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ServiceToken string `yaml:"serviceToken"`
}

// SchedulerConfig defines when ingestion cycles run.
type SchedulerConfig struct {
	IntervalMinutes int            `yaml:"intervalMinutes"`
	Timezone        string         `yaml:"timezone"`
	location        *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Interval returns the cycle period as a duration.
func (s SchedulerConfig) Interval() time.Duration {
	if s.IntervalMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(s.IntervalMinutes) * time.Minute
}

// ScraperConfig bounds one ingestion cycle.
type ScraperConfig struct {
	Concurrency          int    `yaml:"concurrency"`
	BaseQuota            int    `yaml:"baseQuota"`
	MaxArticlesPerSource int    `yaml:"maxArticlesPerSource"`
	MaxContentLength     int    `yaml:"maxContentLength"`
	FetchTimeoutSeconds  int    `yaml:"fetchTimeoutSeconds"`
	UserAgent            string `yaml:"userAgent"`
	ProbeImages          bool   `yaml:"probeImages"`
	ProbeTimeoutSeconds  int    `yaml:"probeTimeoutSeconds"`
}

// FetchTimeout returns the per-feed fetch timeout.
func (s ScraperConfig) FetchTimeout() time.Duration {
	if s.FetchTimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}

// ProbeTimeout returns the og:image probe timeout.
func (s ScraperConfig) ProbeTimeout() time.Duration {
	if s.ProbeTimeoutSeconds <= 0 {
		return 8 * time.Second
	}
	return time.Duration(s.ProbeTimeoutSeconds) * time.Second
}

// BalancerConfig tunes the quota feedback control loop. Amplification and
// the deviation threshold are operational tunables, not load-bearing
// constants; defaults correct category drift within one to two cycles.
type BalancerConfig struct {
	Amplification      float64 `yaml:"amplification"`
	DeviationThreshold float64 `yaml:"deviationThreshold"`
}

// SummarizerConfig defines how to reach the summarization collaborator.
type SummarizerConfig struct {
	Endpoint          string `yaml:"endpoint"`
	APIKey            string `yaml:"apiKey"`
	MinContentLength  int    `yaml:"minContentLength"`
	BatchSize         int    `yaml:"batchSize"`
	BatchDelaySeconds int    `yaml:"batchDelaySeconds"`
}

// BatchDelay returns the inter-batch pause for summarization triggers.
func (s SummarizerConfig) BatchDelay() time.Duration {
	if s.BatchDelaySeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(s.BatchDelaySeconds) * time.Second
}

// NotificationConfig encapsulates outbound operator channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// CategoryConfig binds a category to its target content ratio and the
// keyword dictionary used for classification. Changing this data changes
// classification and balancing without touching the algorithms.
type CategoryConfig struct {
	Name          string              `yaml:"name"`
	TargetRatio   float64             `yaml:"targetRatio"`
	SubCategories []SubCategoryConfig `yaml:"subCategories"`
}

// SubCategoryConfig is a finer-grained keyword bucket within a category.
type SubCategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// SourceHintConfig maps an outlet-name fragment to a category. Rules are
// evaluated in listed order and the order is significant: more specific
// fragments (gaming outlets) must precede broader ones (tech outlets).
type SourceHintConfig struct {
	Substring string `yaml:"substring"`
	Category  string `yaml:"category"`
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

	if len(cfg.Categories) == 0 {
		cfg.Categories = defaultCategories()
	}
	if len(cfg.SourceHints) == 0 {
		cfg.SourceHints = defaultSourceHints()
	}

	return cfg
}

// Validate reports fatal configuration problems. These abort startup
// rather than producing partial, confusing cycles.
func (c Config) Validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required (set %s)", databaseDSNEnv)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("at least one category with a target ratio is required")
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if cat.TargetRatio <= 0 || cat.TargetRatio > 1 {
			return fmt.Errorf("category %s: target ratio %.2f out of (0,1]", cat.Name, cat.TargetRatio)
		}
	}
	return nil
}

// ClampScrapeInterval forces a source scrape interval into the allowed range.
func ClampScrapeInterval(minutes int) int {
	if minutes < minScrapeInterval {
		return minScrapeInterval
	}
	if minutes > maxScrapeInterval {
		return maxScrapeInterval
	}
	return minutes
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(serviceTokenEnv); v != "" {
		c.Server.ServiceToken = v
	}

	if v := os.Getenv(summarizerKeyEnv); v != "" {
		c.Summarizer.APIKey = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
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
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.ServiceToken != "" {
		base.Server.ServiceToken = override.Server.ServiceToken
	}

	if override.Scheduler.IntervalMinutes > 0 {
		base.Scheduler.IntervalMinutes = override.Scheduler.IntervalMinutes
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Scraper.Concurrency > 0 {
		base.Scraper.Concurrency = override.Scraper.Concurrency
	}
	if override.Scraper.BaseQuota > 0 {
		base.Scraper.BaseQuota = override.Scraper.BaseQuota
	}
	if override.Scraper.MaxArticlesPerSource > 0 {
		base.Scraper.MaxArticlesPerSource = override.Scraper.MaxArticlesPerSource
	}
	if override.Scraper.MaxContentLength > 0 {
		base.Scraper.MaxContentLength = override.Scraper.MaxContentLength
	}
	if override.Scraper.FetchTimeoutSeconds > 0 {
		base.Scraper.FetchTimeoutSeconds = override.Scraper.FetchTimeoutSeconds
	}
	if override.Scraper.UserAgent != "" {
		base.Scraper.UserAgent = override.Scraper.UserAgent
	}
	if override.Scraper.ProbeImages {
		base.Scraper.ProbeImages = true
	}
	if override.Scraper.ProbeTimeoutSeconds > 0 {
		base.Scraper.ProbeTimeoutSeconds = override.Scraper.ProbeTimeoutSeconds
	}

	if override.Balancer.Amplification > 0 {
		base.Balancer.Amplification = override.Balancer.Amplification
	}
	if override.Balancer.DeviationThreshold > 0 {
		base.Balancer.DeviationThreshold = override.Balancer.DeviationThreshold
	}

	if override.Summarizer.Endpoint != "" {
		base.Summarizer.Endpoint = override.Summarizer.Endpoint
	}
	if override.Summarizer.APIKey != "" {
		base.Summarizer.APIKey = override.Summarizer.APIKey
	}
	if override.Summarizer.MinContentLength > 0 {
		base.Summarizer.MinContentLength = override.Summarizer.MinContentLength
	}
	if override.Summarizer.BatchSize > 0 {
		base.Summarizer.BatchSize = override.Summarizer.BatchSize
	}
	if override.Summarizer.BatchDelaySeconds > 0 {
		base.Summarizer.BatchDelaySeconds = override.Summarizer.BatchDelaySeconds
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}
	if len(override.SourceHints) > 0 {
		base.SourceHints = override.SourceHints
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Database: DatabaseConfig{DSN: ""},
		Server:   ServerConfig{Addr: ":8080"},
		Scheduler: SchedulerConfig{
			IntervalMinutes: 60,
			Timezone:        defaultTimezone,
			location:        tz,
		},
		Scraper: ScraperConfig{
			Concurrency:          5,
			BaseQuota:            50,
			MaxArticlesPerSource: 10,
			MaxContentLength:     50000,
			FetchTimeoutSeconds:  15,
			UserAgent:            "NewsSiftBot/1.0 (+https://nooz.news)",
			ProbeImages:          true,
			ProbeTimeoutSeconds:  8,
		},
		Balancer: BalancerConfig{
			Amplification:      3,
			DeviationThreshold: 0.05,
		},
		Summarizer: SummarizerConfig{
			Endpoint:          "",
			MinContentLength:  200,
			BatchSize:         5,
			BatchDelaySeconds: 2,
		},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Categories:  defaultCategories(),
		SourceHints: defaultSourceHints(),
	}
}
