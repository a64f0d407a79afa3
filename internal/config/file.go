package config

import "time"

// File represents the structure of the .fundboard configuration file.
// Pointer fields distinguish "not set" from an explicit false.
type File struct {
	// Data is the dataset path.
	Data string `yaml:"data,omitempty"`

	// Sort is the initial sort key (amount_raised or difference_from_goal).
	Sort string `yaml:"sort,omitempty"`

	// Order is the initial sort direction (asc or desc).
	Order string `yaml:"order,omitempty"`

	// IncludeFunded shows fully funded campaigns initially.
	IncludeFunded *bool `yaml:"includeFunded,omitempty"`

	// TrustStoredDifference keeps the dataset's difference_from_goal values.
	TrustStoredDifference *bool `yaml:"trustStoredDifference,omitempty"`

	// Currency is the symbol prefixed to amounts.
	Currency string `yaml:"currency,omitempty"`

	// Title is the page heading.
	Title string `yaml:"title,omitempty"`

	// Serve holds web page settings.
	Serve ServeFile `yaml:"serve,omitempty"`
}

// ServeFile holds the `serve` section of the config file.
type ServeFile struct {
	// Addr is the listen address in host:port form.
	Addr string `yaml:"addr,omitempty"`

	// ShutdownTimeout bounds graceful shutdown, e.g. "10s".
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty"`
}
