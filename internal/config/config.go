package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"FintechNews/internal/domain"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "FINTECH_NEWS_CONFIG"
	logLevelEnv     = "FINTECH_NEWS_LOG_LEVEL"
	serverAddrEnv   = "FINTECH_NEWS_ADDR"
	exportDirEnv    = "FINTECH_NEWS_EXPORT_DIR"
	timezoneEnv     = "FINTECH_NEWS_TIMEZONE"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Timezone string         `yaml:"timezone"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Sources  []SourceConfig `yaml:"sources"`
	Keywords KeywordsConfig `yaml:"keywords"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Server   ServerConfig   `yaml:"server"`
	Export   ExportConfig   `yaml:"export"`

	location *time.Location `yaml:"-"`
}

// LoggingConfig selects slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FetchConfig tunes how feeds are pulled.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxEntries  int           `yaml:"maxEntries"`
	Concurrency int           `yaml:"concurrency"`
	UserAgent   string        `yaml:"userAgent"`
}

// SourceConfig is one named feed endpoint and the scanner strategy reading it.
type SourceConfig struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Scanner string `yaml:"scanner"`
}

// KeywordsConfig holds the relevance vocabulary and the classification groups.
type KeywordsConfig struct {
	Fintech  []string `yaml:"fintech"`
	Funding  []string `yaml:"funding"`
	Global   []string `yaml:"global"`
	National []string `yaml:"national"`
}

// DefaultsConfig seeds the parameter set when the caller omits values.
type DefaultsConfig struct {
	DaysBack     int   `yaml:"daysBack"`
	ShowFunding  *bool `yaml:"showFunding"`
	ShowGlobal   *bool `yaml:"showGlobal"`
	ShowNational *bool `yaml:"showNational"`
}

// ServerConfig configures the HTTP shell. RateLimit is the per-client
// request budget per second on /api.
type ServerConfig struct {
	Addr      string  `yaml:"addr"`
	RateLimit float64 `yaml:"rateLimit"`
}

// ExportConfig configures where CSV exports land.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// Location resolves the configured timezone string to a time.Location.
func (c Config) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Params converts the defaults section into a parameter set.
func (d DefaultsConfig) Params() domain.ParameterSet {
	p := domain.DefaultParameterSet()
	if d.DaysBack != 0 {
		p.DaysBack = d.DaysBack
	}
	if d.ShowFunding != nil {
		p.ShowFunding = *d.ShowFunding
	}
	if d.ShowGlobal != nil {
		p.ShowGlobal = *d.ShowGlobal
	}
	if d.ShowNational != nil {
		p.ShowNational = *d.ShowNational
	}
	return p
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if fileCfg, err := ReadFile(path); err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// ReadFile decodes a YAML config file without merging defaults.
func ReadFile(path string) (Config, error) {
	var fileCfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileCfg, &FileError{Path: path, Op: "read", Err: err}
	}
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return fileCfg, &FileError{Path: path, Op: "parse", Err: err}
	}
	return fileCfg, nil
}

// FileError wraps a failure to read or decode the config file.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return "cannot " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(exportDirEnv); v != "" {
		c.Export.Dir = v
	}

	if v := os.Getenv(timezoneEnv); v != "" {
		c.Timezone = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
		tz = defaultTimezone
	}
	c.Timezone = tz
	c.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}

	if override.Fetch.Timeout > 0 {
		base.Fetch.Timeout = override.Fetch.Timeout
	}
	if override.Fetch.MaxEntries > 0 {
		base.Fetch.MaxEntries = override.Fetch.MaxEntries
	}
	if override.Fetch.Concurrency > 0 {
		base.Fetch.Concurrency = override.Fetch.Concurrency
	}
	if override.Fetch.UserAgent != "" {
		base.Fetch.UserAgent = override.Fetch.UserAgent
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	if len(override.Keywords.Fintech) > 0 {
		base.Keywords.Fintech = override.Keywords.Fintech
	}
	if len(override.Keywords.Funding) > 0 {
		base.Keywords.Funding = override.Keywords.Funding
	}
	if len(override.Keywords.Global) > 0 {
		base.Keywords.Global = override.Keywords.Global
	}
	if len(override.Keywords.National) > 0 {
		base.Keywords.National = override.Keywords.National
	}

	if override.Defaults.DaysBack != 0 {
		base.Defaults.DaysBack = override.Defaults.DaysBack
	}
	if override.Defaults.ShowFunding != nil {
		base.Defaults.ShowFunding = override.Defaults.ShowFunding
	}
	if override.Defaults.ShowGlobal != nil {
		base.Defaults.ShowGlobal = override.Defaults.ShowGlobal
	}
	if override.Defaults.ShowNational != nil {
		base.Defaults.ShowNational = override.Defaults.ShowNational
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.RateLimit > 0 {
		base.Server.RateLimit = override.Server.RateLimit
	}

	if override.Export.Dir != "" {
		base.Export.Dir = override.Export.Dir
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Timezone: defaultTimezone,
		location: tz,
		Fetch: FetchConfig{
			Timeout:     20 * time.Second,
			MaxEntries:  10,
			Concurrency: 3,
			UserAgent:   "FintechNews/1.0",
		},
		Sources: []SourceConfig{
			{Name: "Fintech News", URL: "https://www.fintechnews.org/feed/", Scanner: "rss"},
			{Name: "Finextra", URL: "https://www.finextra.com/rss/feeds.aspx", Scanner: "rss"},
			{Name: "TechCrunch", URL: "https://techcrunch.com/category/fintech/feed/", Scanner: "rss"},
		},
		Keywords: KeywordsConfig{
			Fintech: []string{
				"fintech", "financial technology", "digital banking", "mobile payment",
				"cryptocurrency", "crypto", "blockchain", "digital wallet", "neobank",
				"robo advisor", "insurtech", "regtech", "paytech", "wealthtech",
				"lending", "peer to peer", "p2p", "crowdfunding", "digital currency",
				"defi", "decentralized finance", "open banking", "api banking",
				"embedded finance", "buy now pay later", "bnpl", "fintech startup",
			},
			Funding:  []string{"funding", "investment", "venture capital", "vc", "series", "ipo", "acquisition"},
			Global:   []string{"global", "international", "worldwide", "cross-border"},
			National: []string{"national", "domestic", "local", "country", "government"},
		},
		Defaults: DefaultsConfig{DaysBack: domain.DefaultDaysBack},
		Server:   ServerConfig{Addr: ":8080", RateLimit: 2},
		Export:   ExportConfig{Dir: "."},
	}
}
