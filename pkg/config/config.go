package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// AnalyzeConfig contains settings for single-input analysis
type AnalyzeConfig struct {
	Verbose       bool
	EvidenceLimit int
}

// ScanConfig contains settings for directory scans
type ScanConfig struct {
	Recursive        bool
	MinConfidence    float64
	Extensions       []string
	Exclude          []string
	Workers          int
	MaxFileSize      int64
	RespectGitignore bool
}

// EngineConfig contains settings for the pattern engine
type EngineConfig struct {
	MatchTimeout time.Duration
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string
}

// Config is the effective configuration, file values layered over defaults
type Config struct {
	Analyze AnalyzeConfig
	Scan    ScanConfig
	Engine  EngineConfig
	Log     LogConfig
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Analyze: AnalyzeConfig{
			EvidenceLimit: DefaultEvidenceLimit,
		},
		Scan: ScanConfig{
			MinConfidence:    DefaultMinConfidence,
			Extensions:       append([]string(nil), DefaultExtensions...),
			Workers:          DefaultWorkers,
			MaxFileSize:      DefaultMaxFileSize,
			RespectGitignore: true,
		},
		Engine: EngineConfig{
			MatchTimeout: DefaultMatchTimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// GetConfigPath returns the default config file location
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(LocalConfigDir, LocalConfigFile)
	}
	return filepath.Join(homeDir, LocalConfigDir, LocalConfigFile)
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults; fromFile reports whether a file
// was read
func Load(path string) (cfg *Config, fromFile bool, err error) {
	if path == "" {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return nil, false, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, true, nil
}

// Parse reads configuration from INI data
func Parse(data []byte) (*Config, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg := Default()
	if err := cfg.apply(f); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(f *ini.File) error {
	sec := f.Section("analyze")
	if err := readBool(sec, "verbose", &c.Analyze.Verbose); err != nil {
		return err
	}
	if err := readInt(sec, "evidence_limit", &c.Analyze.EvidenceLimit); err != nil {
		return err
	}

	sec = f.Section("scan")
	if err := readBool(sec, "recursive", &c.Scan.Recursive); err != nil {
		return err
	}
	if sec.HasKey("min_confidence") {
		v, err := sec.Key("min_confidence").Float64()
		if err != nil {
			return keyError(sec, "min_confidence", err)
		}
		c.Scan.MinConfidence = v
	}
	if sec.HasKey("extensions") {
		c.Scan.Extensions = sec.Key("extensions").Strings(",")
	}
	if sec.HasKey("exclude") {
		c.Scan.Exclude = sec.Key("exclude").Strings(",")
	}
	if err := readInt(sec, "workers", &c.Scan.Workers); err != nil {
		return err
	}
	if sec.HasKey("max_file_size") {
		v, err := sec.Key("max_file_size").Int64()
		if err != nil {
			return keyError(sec, "max_file_size", err)
		}
		c.Scan.MaxFileSize = v
	}
	if err := readBool(sec, "respect_gitignore", &c.Scan.RespectGitignore); err != nil {
		return err
	}

	sec = f.Section("engine")
	if sec.HasKey("match_timeout") {
		v, err := sec.Key("match_timeout").Duration()
		if err != nil {
			return keyError(sec, "match_timeout", err)
		}
		c.Engine.MatchTimeout = v
	}

	sec = f.Section("log")
	if sec.HasKey("level") {
		c.Log.Level = strings.ToLower(sec.Key("level").String())
	}

	return c.Validate()
}

func readBool(sec *ini.Section, key string, dst *bool) error {
	if !sec.HasKey(key) {
		return nil
	}
	v, err := sec.Key(key).Bool()
	if err != nil {
		return keyError(sec, key, err)
	}
	*dst = v
	return nil
}

func readInt(sec *ini.Section, key string, dst *int) error {
	if !sec.HasKey(key) {
		return nil
	}
	v, err := sec.Key(key).Int()
	if err != nil {
		return keyError(sec, key, err)
	}
	*dst = v
	return nil
}

func keyError(sec *ini.Section, key string, err error) error {
	return fmt.Errorf("%s.%s: %w", sec.Name(), key, err)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Analyze.EvidenceLimit < 0 {
		return fmt.Errorf("analyze.evidence_limit: must not be negative, got %d", c.Analyze.EvidenceLimit)
	}
	if c.Scan.MinConfidence < 0 || c.Scan.MinConfidence > 1 {
		return fmt.Errorf("scan.min_confidence: must be between 0 and 1, got %v", c.Scan.MinConfidence)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers: must be at least 1, got %d", c.Scan.Workers)
	}
	if c.Scan.MaxFileSize <= 0 {
		return fmt.Errorf("scan.max_file_size: must be positive, got %d", c.Scan.MaxFileSize)
	}
	if c.Engine.MatchTimeout < 0 {
		return fmt.Errorf("engine.match_timeout: must not be negative, got %s", c.Engine.MatchTimeout)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// Encode renders the configuration as INI
func (c *Config) Encode() ([]byte, error) {
	f := ini.Empty()

	sec := f.Section("analyze")
	sec.Key("verbose").SetValue(strconv.FormatBool(c.Analyze.Verbose))
	sec.Key("evidence_limit").SetValue(strconv.Itoa(c.Analyze.EvidenceLimit))

	sec = f.Section("scan")
	sec.Key("recursive").SetValue(strconv.FormatBool(c.Scan.Recursive))
	sec.Key("min_confidence").SetValue(strconv.FormatFloat(c.Scan.MinConfidence, 'f', -1, 64))
	sec.Key("extensions").SetValue(strings.Join(c.Scan.Extensions, ","))
	sec.Key("exclude").SetValue(strings.Join(c.Scan.Exclude, ","))
	sec.Key("workers").SetValue(strconv.Itoa(c.Scan.Workers))
	sec.Key("max_file_size").SetValue(strconv.FormatInt(c.Scan.MaxFileSize, 10))
	sec.Key("respect_gitignore").SetValue(strconv.FormatBool(c.Scan.RespectGitignore))

	sec = f.Section("engine")
	sec.Key("match_timeout").SetValue(c.Engine.MatchTimeout.String())

	sec = f.Section("log")
	sec.Key("level").SetValue(c.Log.Level)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the configuration to path, or the default location when path is
// empty
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, PermDirectory); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Encode()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, PermConfigFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
