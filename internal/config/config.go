package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the menu tools configuration.
type Config struct {
	ProjectRoot    string               `yaml:"project_root"`
	Enrich         EnrichConfig         `yaml:"enrich"`
	Classification ClassificationConfig `yaml:"classification"`
	Additions      AdditionsConfig      `yaml:"additions"`
	Sticker        StickerConfig        `yaml:"sticker"`
	Cache          CacheConfig          `yaml:"cache"`
	Metrics        MetricsConfig        `yaml:"metrics"`
	Logging        LoggingConfig        `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// EnrichConfig lists the menu documents to enrich.
type EnrichConfig struct {
	Jobs []JobConfig `yaml:"jobs"`
}

// JobConfig binds one menu document to its enrichment domain.
type JobConfig struct {
	Domain string `yaml:"domain"` // food, bar, cafe
	Input  string `yaml:"input"`
	Output string `yaml:"output"` // default: <dir>/<domain>-enhanced.json
}

// ClassificationConfig points at the classification tables.
type ClassificationConfig struct {
	Path string `yaml:"path"` // empty: built-in tables
}

// AdditionsConfig holds item-append settings.
type AdditionsConfig struct {
	Domain   string            `yaml:"domain"`
	Menu     string            `yaml:"menu"`
	Drafts   string            `yaml:"drafts"`
	Prefixes map[string]string `yaml:"prefixes"` // category id -> id prefix
}

// StickerConfig holds the QR sticker layout inputs.
type StickerConfig struct {
	QRPath     string      `yaml:"qr_path"`
	OutputPath string      `yaml:"output_path"`
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	BrandColor string      `yaml:"brand_color"` // #RRGGBB
	Title      string      `yaml:"title"`
	Tagline    string      `yaml:"tagline"`
	Button     string      `yaml:"button"`
	Subtitle   string      `yaml:"subtitle"`
	Fonts      FontsConfig `yaml:"fonts"`
}

// FontsConfig lists candidate font files per text role, tried in order.
type FontsConfig struct {
	Regular []string `yaml:"regular"`
	Bold    []string `yaml:"bold"`
}

// CacheConfig holds the optional Valkey/Redis mirror settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	KeyPrefix        string   `yaml:"key_prefix"`
	JSONModule       *bool    `yaml:"json_module"` // default: true
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	WriteTimeoutSec  int      `yaml:"write_timeout_sec"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	Textfile string `yaml:"textfile"` // node_exporter textfile path, empty disables
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFrom(findConfigPath(env))
}

// LoadFrom reads configuration from an explicit YAML path.
func LoadFrom(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.ProjectRoot == "" {
		c.ProjectRoot = "."
	}
	if len(c.Enrich.Jobs) == 0 {
		for _, d := range []string{"food", "bar", "cafe"} {
			c.Enrich.Jobs = append(c.Enrich.Jobs, JobConfig{
				Domain: d,
				Input:  filepath.Join("src", "data", "menus", d+".json"),
			})
		}
	}
	for i := range c.Enrich.Jobs {
		j := &c.Enrich.Jobs[i]
		if j.Output == "" && j.Input != "" {
			j.Output = EnhancedPath(j.Input, j.Domain)
		}
	}
	if c.Additions.Domain == "" {
		c.Additions.Domain = "food"
	}
	if c.Additions.Menu == "" {
		c.Additions.Menu = filepath.Join("src", "data", "menus", c.Additions.Domain+".json")
	}
	if c.Additions.Drafts == "" {
		c.Additions.Drafts = filepath.Join("scripts", "new-items.yaml")
	}
	c.applyStickerDefaults()
	if c.Cache.Driver == "" {
		c.Cache.Driver = "valkey"
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "amante:"
	}
	if c.Cache.JSONModule == nil {
		on := true
		c.Cache.JSONModule = &on
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Cache.WriteTimeoutSec <= 0 {
		c.Cache.WriteTimeoutSec = 5
	}
}

func (c *Config) applyStickerDefaults() {
	s := &c.Sticker
	if s.QRPath == "" {
		s.QRPath = "qrchimpX1024 (3).png"
	}
	if s.OutputPath == "" {
		s.OutputPath = filepath.Join("public", "qr-codes", "sticker-netlify.png")
	}
	if s.Width <= 0 {
		s.Width = 1240
	}
	if s.Height <= 0 {
		s.Height = 1754
	}
	if s.BrandColor == "" {
		s.BrandColor = "#8B1538"
	}
	if s.Title == "" {
		s.Title = "AMANTE"
	}
	if s.Tagline == "" {
		s.Tagline = "A World of Flavor, Just a Scan Away."
	}
	if s.Button == "" {
		s.Button = "SCAN ME"
	}
	if s.Subtitle == "" {
		s.Subtitle = "View Our Menu"
	}
	if len(s.Fonts.Regular) == 0 {
		s.Fonts.Regular = []string{
			"/System/Library/Fonts/Supplemental/Georgia.ttf",
			"/Library/Fonts/Arial.ttf",
		}
	}
	if len(s.Fonts.Bold) == 0 {
		s.Fonts.Bold = []string{
			"/System/Library/Fonts/Supplemental/Georgia Bold.ttf",
			"/Library/Fonts/Arial Bold.ttf",
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	for i, j := range c.Enrich.Jobs {
		switch j.Domain {
		case "food", "bar", "cafe":
		default:
			return fmt.Errorf("enrich.jobs[%d].domain must be food, bar or cafe, got %q", i, j.Domain)
		}
		if j.Input == "" {
			return fmt.Errorf("enrich.jobs[%d].input is required", i)
		}
		if filepath.Clean(j.Input) == filepath.Clean(j.Output) {
			return fmt.Errorf("enrich.jobs[%d].output must differ from input", i)
		}
	}
	switch c.Additions.Domain {
	case "food", "bar", "cafe":
	default:
		return fmt.Errorf("additions.domain must be food, bar or cafe, got %q", c.Additions.Domain)
	}
	if c.Cache.Enabled {
		switch c.Cache.Driver {
		case "valkey", "redis":
		default:
			return fmt.Errorf("cache.driver must be \"valkey\" or \"redis\", got %q", c.Cache.Driver)
		}
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required when cache is enabled")
		}
	}
	if !hexColorRegex.MatchString(c.Sticker.BrandColor) {
		return fmt.Errorf("sticker.brand_color must be #RRGGBB, got %q", c.Sticker.BrandColor)
	}
	return nil
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// EnhancedPath returns the default output for a menu: <dir>/<domain>-enhanced.json.
func EnhancedPath(input, domain string) string {
	return filepath.Join(filepath.Dir(input), domain+"-enhanced.json")
}

// Resolve joins a relative path onto the project root.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.ProjectRoot, path)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
