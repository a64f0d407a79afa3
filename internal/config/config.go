package config

import (
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/fundboard/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "fundboard"

	// DefaultListenAddr is where `fundboard serve` listens.
	// Loopback only; exposing the page is an explicit choice.
	DefaultListenAddr = "127.0.0.1:8080"

	// DefaultShutdownTimeout bounds graceful shutdown of the web server.
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultCurrencySymbol prefixes every rendered amount.
	DefaultCurrencySymbol = "$"

	// DefaultBundleFile is the file name `fundboard bundle` writes when no
	// output path is given.
	DefaultBundleFile = "campaigns.db"
)

// Config holds all configuration options for fundboard.
// It is populated from the config file, the environment and CLI flags, and
// passed down explicitly; no package keeps a global copy.
type Config struct {
	// DataPath is the dataset to load (.json, .yaml, .yml, .db, .sqlite).
	// Empty means the embedded demo dataset.
	DataPath string

	// Query is the initial listing query: sort key, direction and the
	// fully funded toggle.
	Query model.Query

	// TrustStoredDifference keeps the difference_from_goal value from the
	// dataset instead of recomputing goal - amount_raised at load time.
	TrustStoredDifference bool

	// CurrencySymbol is prefixed to every amount in reports and pages.
	CurrencySymbol string

	// Title is the heading of the page and the terminal UI.
	// Empty means the built-in heading.
	Title string

	// ListenAddr is the host:port the web page is served on.
	ListenAddr string

	// ShutdownTimeout bounds graceful shutdown of the web server.
	ShutdownTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport selects JSON output for `fundboard list`.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output for `fundboard list`.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the listing to this path instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the current directory, the home directory
	// and the XDG config directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Query:           model.DefaultQuery(),
		CurrencySymbol:  DefaultCurrencySymbol,
		ListenAddr:      DefaultListenAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// SetSortKey parses and stores the sort key.
func (c *Config) SetSortKey(s string) error {
	key, err := model.ParseSortKey(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
	c.Query.Key = key
	return nil
}

// SetDirection parses and stores the sort direction.
func (c *Config) SetDirection(s string) error {
	dir, err := model.ParseDirection(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	c.Query.Direction = dir
	return nil
}

// ApplyFile overlays non-empty values from a config file.
func (c *Config) ApplyFile(f *File) error {
	if f == nil {
		return nil
	}
	if f.Data != "" {
		c.DataPath = f.Data
	}
	if f.Sort != "" {
		if err := c.SetSortKey(f.Sort); err != nil {
			return err
		}
	}
	if f.Order != "" {
		if err := c.SetDirection(f.Order); err != nil {
			return err
		}
	}
	if f.IncludeFunded != nil {
		c.Query.IncludeFunded = *f.IncludeFunded
	}
	if f.TrustStoredDifference != nil {
		c.TrustStoredDifference = *f.TrustStoredDifference
	}
	if f.Currency != "" {
		c.CurrencySymbol = f.Currency
	}
	if f.Title != "" {
		c.Title = f.Title
	}
	if f.Serve.Addr != "" {
		c.ListenAddr = f.Serve.Addr
	}
	if f.Serve.ShutdownTimeout != 0 {
		c.ShutdownTimeout = f.Serve.ShutdownTimeout
	}
	return nil
}

// XDGDataDir returns the XDG data directory for fundboard.
// On Linux: ~/.local/share/fundboard
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for fundboard.
// On Linux: ~/.config/fundboard
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultBundlePath is where `fundboard bundle` writes by default.
func DefaultBundlePath() string {
	return filepath.Join(XDGDataDir(), DefaultBundleFile)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if !c.Query.Key.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, string(c.Query.Key))
	}
	if !c.Query.Direction.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, string(c.Query.Direction))
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if _, _, err := net.SplitHostPort(c.ListenAddr); err != nil {
		return errors.Join(ErrInvalidListenAddr, err)
	}
	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}
	return nil
}
