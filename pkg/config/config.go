// Package config handles application configuration for the guest
// submission service. Defaults are usable out of the box; a YAML file
// and a handful of environment variables can override them.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration, injected into the
// pipeline at construction so tests can swap limits.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Journal   JournalConfig   `yaml:"journal"`
	Limits    LimitsConfig    `yaml:"limits"`
	Options   OptionsConfig   `yaml:"options"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// JournalConfig identifies the journal and its mailboxes.
type JournalConfig struct {
	SiteName     string   `yaml:"site_name"`
	SiteURL      string   `yaml:"site_url"`
	AdminEmail   string   `yaml:"admin_email"`
	NoReplyEmail string   `yaml:"noreply_email"`
	CCEmails     []string `yaml:"cc_emails,omitempty"`  // extra recipients on the admin notice
	BCCEmails    []string `yaml:"bcc_emails,omitempty"` // blind copies on the admin notice
}

// FileType pairs an accepted filename extension with the media type its
// content must sniff as.
type FileType struct {
	Extension string `yaml:"extension"`
	MIME      string `yaml:"mime"`
}

// LimitsConfig holds the validation limits for one submission.
type LimitsConfig struct {
	MaxFileBytes     int64      `yaml:"max_file_bytes"`
	AllowedTypes     []FileType `yaml:"allowed_types"`
	MaxAbstractWords int        `yaml:"max_abstract_words"`
	MinKeywords      int        `yaml:"min_keywords"`
	MaxKeywords      int        `yaml:"max_keywords"`
}

// Extensions lists the accepted extensions in config order.
func (l LimitsConfig) Extensions() []string {
	exts := make([]string, len(l.AllowedTypes))
	for i, t := range l.AllowedTypes {
		exts[i] = t.Extension
	}
	return exts
}

// MIMEForExtension returns the sniffed type required for ext.
func (l LimitsConfig) MIMEForExtension(ext string) (string, bool) {
	for _, t := range l.AllowedTypes {
		if t.Extension == ext {
			return t.MIME, true
		}
	}
	return "", false
}

// AllowsMIME reports whether mime is acceptable for any extension.
func (l LimitsConfig) AllowsMIME(mime string) bool {
	for _, t := range l.AllowedTypes {
		if t.MIME == mime {
			return true
		}
	}
	return false
}

// OptionsConfig lists the closed vocabularies the submission form offers.
type OptionsConfig struct {
	ArticleTypes    []string `yaml:"article_types"`
	AuthorTitles    []string `yaml:"author_titles"`
	AuthorshipTypes []string `yaml:"authorship_types"`
}

// SMTPConfig holds the outbound mail relay settings. An empty Host means
// messages are logged instead of sent (dev mode).
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Addr returns host:port for the relay.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RateLimitConfig caps submissions per client IP. Disabled by default.
type RateLimitConfig struct {
	Enabled       bool `yaml:"enabled"`
	MaxPerIP      int  `yaml:"max_per_ip"`
	WindowSeconds int  `yaml:"window_seconds"`
}

// Default returns the stock configuration for the journal deployment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Journal: JournalConfig{
			SiteName:     "International Technology Journal",
			SiteURL:      "https://publications.fstu.uz/itj",
			AdminEmail:   "stj_admin@fstu.uz",
			NoReplyEmail: "noreply@fstu.uz",
		},
		Limits: LimitsConfig{
			MaxFileBytes: 17 * 1024 * 1024,
			AllowedTypes: []FileType{
				{Extension: "doc", MIME: "application/msword"},
				{Extension: "docx", MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
			},
			MaxAbstractWords: 350,
			MinKeywords:      4,
			MaxKeywords:      6,
		},
		Options: OptionsConfig{
			ArticleTypes: []string{
				"Original article",
				"Review article",
				"Case study",
				"Short communication",
				"Technical note",
			},
			AuthorTitles: []string{
				"Dr.", "Prof.", "Assoc. Prof.", "Asst. Prof.", "Mr.", "Ms.", "Mrs.",
			},
			AuthorshipTypes: []string{
				"First Author", "Co-Author", "Corresponding Author",
			},
		},
		SMTP: SMTPConfig{
			Port: 25,
		},
		RateLimit: RateLimitConfig{
			Enabled:       false,
			MaxPerIP:      5,
			WindowSeconds: 3600,
		},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("JOURNALHUB_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("JOURNALHUB_ADMIN_EMAIL"); v != "" {
		cfg.Journal.AdminEmail = v
	}
	if v := os.Getenv("JOURNALHUB_NOREPLY_EMAIL"); v != "" {
		cfg.Journal.NoReplyEmail = v
	}
	if v := os.Getenv("JOURNALHUB_SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("JOURNALHUB_SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if v := os.Getenv("JOURNALHUB_SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("JOURNALHUB_SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
}

func (c *Config) validate() error {
	if c.Journal.AdminEmail == "" {
		return fmt.Errorf("config: journal.admin_email is required")
	}
	if c.Journal.NoReplyEmail == "" {
		return fmt.Errorf("config: journal.noreply_email is required")
	}
	if c.Limits.MaxFileBytes <= 0 {
		return fmt.Errorf("config: limits.max_file_bytes must be positive")
	}
	if len(c.Limits.AllowedTypes) == 0 {
		return fmt.Errorf("config: limits.allowed_types must not be empty")
	}
	if c.Limits.MinKeywords <= 0 || c.Limits.MaxKeywords < c.Limits.MinKeywords {
		return fmt.Errorf("config: keyword bounds are inconsistent")
	}
	return nil
}
