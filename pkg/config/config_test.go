package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Limits.MaxFileBytes != 17*1024*1024 {
		t.Fatalf("max file bytes = %d", cfg.Limits.MaxFileBytes)
	}
	if cfg.Limits.MinKeywords != 4 || cfg.Limits.MaxKeywords != 6 {
		t.Fatalf("keyword bounds = %d-%d", cfg.Limits.MinKeywords, cfg.Limits.MaxKeywords)
	}
	if len(cfg.Options.ArticleTypes) != 5 {
		t.Fatalf("article types = %v", cfg.Options.ArticleTypes)
	}
	if got := cfg.Limits.Extensions(); len(got) != 2 || got[0] != "doc" || got[1] != "docx" {
		t.Fatalf("extensions = %v", got)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestMIMEForExtension(t *testing.T) {
	limits := Default().Limits

	mime, ok := limits.MIMEForExtension("docx")
	if !ok || mime != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("docx mime = %q, ok = %v", mime, ok)
	}
	if _, ok := limits.MIMEForExtension("pdf"); ok {
		t.Fatal("pdf must not be allowed")
	}
	if !limits.AllowsMIME("application/msword") {
		t.Fatal("msword must be allowed")
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
journal:
  site_name: Test Journal
  admin_email: editors@test.example
limits:
  max_abstract_words: 200
smtp:
  host: smtp.test.example
  port: 587
rate_limit:
  enabled: true
  max_per_ip: 2
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Journal.SiteName != "Test Journal" || cfg.Journal.AdminEmail != "editors@test.example" {
		t.Fatalf("journal overrides not applied: %+v", cfg.Journal)
	}
	if cfg.Limits.MaxAbstractWords != 200 {
		t.Fatalf("abstract limit = %d", cfg.Limits.MaxAbstractWords)
	}
	// untouched fields keep their defaults
	if cfg.Journal.NoReplyEmail != "noreply@fstu.uz" {
		t.Fatalf("noreply default lost: %q", cfg.Journal.NoReplyEmail)
	}
	if cfg.SMTP.Addr() != "smtp.test.example:587" {
		t.Fatalf("smtp addr = %q", cfg.SMTP.Addr())
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.MaxPerIP != 2 {
		t.Fatalf("rate limit = %+v", cfg.RateLimit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JOURNALHUB_ADMIN_EMAIL", "ops@test.example")
	t.Setenv("JOURNALHUB_SMTP_HOST", "relay.test.example")
	t.Setenv("JOURNALHUB_SMTP_PORT", "2525")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Journal.AdminEmail != "ops@test.example" {
		t.Fatalf("admin email = %q", cfg.Journal.AdminEmail)
	}
	if cfg.SMTP.Addr() != "relay.test.example:2525" {
		t.Fatalf("smtp addr = %q", cfg.SMTP.Addr())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := Default()
	cfg.Limits.MinKeywords = 6
	cfg.Limits.MaxKeywords = 4
	if err := cfg.validate(); err == nil {
		t.Fatal("inverted keyword bounds must be rejected")
	}

	cfg = Default()
	cfg.Journal.AdminEmail = ""
	if err := cfg.validate(); err == nil {
		t.Fatal("missing admin email must be rejected")
	}
}
