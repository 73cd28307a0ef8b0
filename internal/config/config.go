package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all suite configuration
type Config struct {
	Version   int             `toml:"version"`
	Browser   BrowserConfig   `toml:"browser"`
	Timeouts  TimeoutsConfig  `toml:"timeouts"`
	Suite     SuiteConfig     `toml:"suite"`
	Artifacts ArtifactsConfig `toml:"artifacts"`
	Logging   LoggingConfig   `toml:"logging"`
	Watch     WatchConfig     `toml:"watch"`
	Email     EmailConfig     `toml:"email"`
}

type BrowserConfig struct {
	Headless        bool   `toml:"headless"`
	MobileEmulation bool   `toml:"mobile_emulation"`
	DeviceName      string `toml:"device_name"`
	BaseURL         string `toml:"base_url"`
}

type TimeoutsConfig struct {
	ExplicitWaitSec    int `toml:"explicit_wait_seconds"`
	PageLoadTimeoutSec int `toml:"page_load_timeout_seconds"`
	MaxRetries         int `toml:"max_retries"`
	RetryDelaySec      int `toml:"retry_delay_seconds"`
}

type SuiteConfig struct {
	Query       string   `toml:"query"`
	ScrollTimes int      `toml:"scroll_times"`
	Devices     []string `toml:"devices"`
	Workers     int      `toml:"workers"`
}

type ArtifactsConfig struct {
	ScreenshotDir       string `toml:"screenshot_dir"`
	LogDir              string `toml:"log_dir"`
	ReportDir           string `toml:"report_dir"`
	DataDir             string `toml:"data_dir"`
	ScreenshotOnFailure bool   `toml:"screenshot_on_failure"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type WatchConfig struct {
	IntervalHours   int    `toml:"interval_hours"`
	NotifyOnFailure bool   `toml:"notify_on_failure"`
	NotifyTo        string `toml:"notify_to"`
}

type EmailConfig struct {
	Provider string `toml:"provider"`
	SMTPHost string `toml:"smtp_host"`
	SMTPPort int    `toml:"smtp_port"`
	SMTPUser string `toml:"smtp_user"`
	SMTPPass string `toml:"smtp_pass"`
	FromAddr string `toml:"from_address"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Browser: BrowserConfig{
			Headless:        false,
			MobileEmulation: true,
			DeviceName:      "Pixel 5",
			BaseURL:         "https://m.twitch.tv/",
		},
		Timeouts: TimeoutsConfig{
			ExplicitWaitSec:    20,
			PageLoadTimeoutSec: 30,
			MaxRetries:         3,
			RetryDelaySec:      2,
		},
		Suite: SuiteConfig{
			Query:       "StarCraft II",
			ScrollTimes: 2,
			Devices:     []string{"Pixel 5"},
			Workers:     1,
		},
		Artifacts: ArtifactsConfig{
			ScreenshotDir:       "screenshots",
			LogDir:              "logs",
			ReportDir:           "reports",
			DataDir:             "data",
			ScreenshotOnFailure: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			IntervalHours:   2,
			NotifyOnFailure: false,
		},
		Email: EmailConfig{
			Provider: "smtp",
			SMTPPort: 587,
		},
	}
}

// Load reads config from the given TOML file, then layers .env and
// environment variable overrides on top. A missing config file is not an
// error; defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// .env values become environment variables unless already set
	_ = godotenv.Load()

	cfg.applyEnv()

	return cfg, nil
}

// Save writes config to the given path
func (c *Config) Save(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}

// applyEnv overrides config values from environment variables
func (c *Config) applyEnv() {
	setBool(&c.Browser.Headless, "HEADLESS")
	setBool(&c.Browser.MobileEmulation, "MOBILE_EMULATION")
	setString(&c.Browser.DeviceName, "DEVICE_NAME")
	setString(&c.Browser.BaseURL, "BASE_URL")

	setInt(&c.Timeouts.ExplicitWaitSec, "EXPLICIT_WAIT")
	setInt(&c.Timeouts.PageLoadTimeoutSec, "PAGE_LOAD_TIMEOUT")
	setInt(&c.Timeouts.MaxRetries, "MAX_RETRIES")
	setInt(&c.Timeouts.RetryDelaySec, "RETRY_DELAY")

	setString(&c.Logging.Level, "LOG_LEVEL")
	setBool(&c.Artifacts.ScreenshotOnFailure, "SCREENSHOT_ON_FAILURE")
	setString(&c.Artifacts.ScreenshotDir, "SCREENSHOT_DIR")
	setString(&c.Artifacts.LogDir, "LOG_DIR")
	setString(&c.Artifacts.ReportDir, "REPORT_DIR")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// EnsureDirs creates all artifact directories
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{
		c.Artifacts.ScreenshotDir,
		c.Artifacts.LogDir,
		c.Artifacts.ReportDir,
		c.Artifacts.DataDir,
	} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}

// ExplicitWait returns the explicit wait as a duration
func (c *Config) ExplicitWait() time.Duration {
	return time.Duration(c.Timeouts.ExplicitWaitSec) * time.Second
}

// PageLoadTimeout returns the page load timeout as a duration
func (c *Config) PageLoadTimeout() time.Duration {
	return time.Duration(c.Timeouts.PageLoadTimeoutSec) * time.Second
}

// RetryDelay returns the delay between retry attempts
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Timeouts.RetryDelaySec) * time.Second
}
