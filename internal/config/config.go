// Package config defines the interpreter's runtime configuration:
// the sanity limits the analyzer enforces, the networks whose records are
// skipped past their common prefix, session idle timeouts, and the
// ambient logging/status-API settings.
package config

import (
	"errors"
	"time"
)

// LoggingConfig controls the structured logger (see internal/logging).
type LoggingConfig struct {
	Level            string            `json:"level"`
	Structured       bool              `json:"structured"`
	StructuredFormat string            `json:"structured_format"`
	IncludePID       bool              `json:"include_pid"`
	ExtraFields      map[string]string `json:"extra_fields,omitempty"`
	// RotateFile, when set, routes logs through a rotating file writer
	// instead of stderr.
	RotateFile    string `json:"rotate_file,omitempty"`
	RotateMaxSize int    `json:"rotate_max_size_mb,omitempty"`
	RotateMaxAge  int    `json:"rotate_max_age_days,omitempty"`
	RotateBackups int    `json:"rotate_backups,omitempty"`
}

// StatusAPIConfig controls the read-only operator HTTP surface
// (internal/statusapi).
type StatusAPIConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

// StoreConfig controls the optional SQLite-backed reference event sink
// (internal/store).
type StoreConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// Config is the root configuration for one interpreter deployment.
type Config struct {
	// MaxQueries bounds QDCount before the analyzer treats a message as
	// too implausible to be real DNS and aborts it as a sanity-check
	// failure rather than walking a QDCount in the tens of thousands.
	MaxQueries uint64 `json:"max_queries"`

	// SkipAllAuth/SkipAllAddl unconditionally limit the authority and
	// additional sections to their common RR prefix (name/type/class/
	// TTL), skipping typed RDATA decode entirely.
	SkipAllAuth bool `json:"skip_all_auth"`
	SkipAllAddl bool `json:"skip_all_addl"`

	// SkipAuthNets/SkipAddlNets apply the same skip behavior, but only
	// for responders whose address falls inside one of these networks.
	SkipAuthNets []string `json:"skip_auth_nets,omitempty"`
	SkipAddlNets []string `json:"skip_addl_nets,omitempty"`

	// SessionTimeout is how long a flow may sit idle before the session
	// adapter considers it finished.
	SessionTimeout time.Duration `json:"session_timeout"`

	Logging   LoggingConfig   `json:"logging"`
	StatusAPI StatusAPIConfig `json:"status_api"`
	Store     StoreConfig     `json:"store"`

	authTable *SkipTable
	addlTable *SkipTable
}

const defaultMaxQueries = 100
const defaultSessionTimeout = 5 * time.Minute

// Validate normalizes defaults and compiles the skip-network lists into
// lookup tables. It must be called before a Config is handed to
// analyzer.NewInterpreter.
func (cfg *Config) Validate() error {
	if cfg.MaxQueries == 0 {
		cfg.MaxQueries = defaultMaxQueries
	}
	if cfg.SessionTimeout <= 0 {
		cfg.SessionTimeout = defaultSessionTimeout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}
	if cfg.StatusAPI.Enabled {
		if cfg.StatusAPI.Port <= 0 || cfg.StatusAPI.Port > 65535 {
			return errors.New("status_api.port must be 1..65535")
		}
		if cfg.StatusAPI.Host == "" {
			cfg.StatusAPI.Host = "127.0.0.1"
		}
	}
	if cfg.Store.Enabled && cfg.Store.Path == "" {
		return errors.New("store.path is required when store.enabled is true")
	}

	var err error
	if cfg.authTable, err = NewSkipTable(cfg.SkipAuthNets); err != nil {
		return err
	}
	if cfg.addlTable, err = NewSkipTable(cfg.SkipAddlNets); err != nil {
		return err
	}
	return nil
}

// AuthSkipTable returns the compiled authority-section skip table. Call
// Validate first.
func (cfg *Config) AuthSkipTable() *SkipTable { return cfg.authTable }

// AddlSkipTable returns the compiled additional-section skip table. Call
// Validate first.
func (cfg *Config) AddlSkipTable() *SkipTable { return cfg.addlTable }
