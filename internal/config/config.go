// Package config loads tasklist settings from TOML files, the environment
// and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/tasklist/internal/model"
	"github.com/Makepad-fr/tasklist/internal/store"
	"github.com/Makepad-fr/tasklist/internal/tasklist"
)

const (
	appName         = "tasklist"
	userFileName    = "config.toml"
	projectFileName = "tasklist.toml"
	envPrefix       = "TASKLIST_"
)

// Config is the full set of settings.
type Config struct {
	Persist string      `toml:"persist"`
	Store   StoreConfig `toml:"store"`
	UI      UIConfig    `toml:"ui"`
	Log     LogConfig   `toml:"log"`
}

// StoreConfig selects the repository backend.
type StoreConfig struct {
	Kind string `toml:"kind"`
	Path string `toml:"path"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme  string `toml:"theme"`
	Filter string `toml:"filter"`
	Group  bool   `toml:"group"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Persist: "always",
		Store:   StoreConfig{Kind: string(store.KindJSON)},
		UI:      UIConfig{Theme: "classic", Filter: "all"},
		Log:     LogConfig{Level: "warn", Format: "text"},
	}
}

// Sources says where Load looks. Zero fields are skipped.
type Sources struct {
	UserFile    string
	ProjectFile string
	Getenv      func(string) string
}

// DefaultSources points at the user config dir, the working directory and
// the process environment.
func DefaultSources() Sources {
	src := Sources{ProjectFile: projectFileName, Getenv: os.Getenv}
	if dir, err := os.UserConfigDir(); err == nil {
		src.UserFile = filepath.Join(dir, appName, userFileName)
	}
	return src
}

// Load applies, in order: defaults, the user file, the project file,
// environment variables and finally the flags in args. Flags are registered
// on fs after the lower layers are applied, so their defaults show the
// effective value in -h output. It returns the positional arguments left
// after flag parsing.
func Load(fs *flag.FlagSet, args []string, src Sources) (*Config, []string, error) {
	cfg := Default()

	for _, path := range []string{src.UserFile, src.ProjectFile} {
		if path == "" {
			continue
		}
		if err := loadFile(&cfg, path); err != nil {
			return nil, nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if src.Getenv != nil {
		loadEnv(&cfg, src.Getenv)
	}

	registerFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, nil, err
	}
	return &cfg, fs.Args(), nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadEnv(cfg *Config, getenv func(string) string) {
	set := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(envPrefix + name)); v != "" {
			*dst = v
		}
	}
	set("STORE", &cfg.Store.Kind)
	set("PATH", &cfg.Store.Path)
	set("THEME", &cfg.UI.Theme)
	set("FILTER", &cfg.UI.Filter)
	set("PERSIST", &cfg.Persist)
	set("LOG_LEVEL", &cfg.Log.Level)
	set("LOG_FORMAT", &cfg.Log.Format)
	switch strings.ToLower(getenv(envPrefix + "GROUP")) {
	case "1", "true", "yes":
		cfg.UI.Group = true
	case "0", "false", "no":
		cfg.UI.Group = false
	}
}

func registerFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Store.Kind, "store", cfg.Store.Kind, "storage backend: json, yaml, sqlite or memory")
	fs.StringVar(&cfg.Store.Path, "path", cfg.Store.Path, "data file (default depends on -store)")
	fs.StringVar(&cfg.UI.Theme, "theme", cfg.UI.Theme, "color theme: classic, neon or mono")
	fs.StringVar(&cfg.UI.Filter, "filter", cfg.UI.Filter, "initial filter: all, done or not-done")
	fs.BoolVar(&cfg.UI.Group, "group", cfg.UI.Group, "group output by pending/done")
	fs.StringVar(&cfg.Persist, "persist", cfg.Persist, "when to save: always or on-change")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "log format: text, json or logfmt")
}

// Finalize validates enum values, normalizes them and fills derived defaults.
func (c *Config) Finalize() error {
	kind, err := store.ParseKind(c.Store.Kind)
	if err != nil {
		return fmt.Errorf("store.kind: %w", err)
	}
	c.Store.Kind = string(kind)
	if c.Store.Path == "" {
		c.Store.Path = store.DefaultFileName(kind)
	} else {
		c.Store.Path = expandPath(c.Store.Path)
	}

	f, err := model.ParseFilter(c.UI.Filter)
	if err != nil {
		return fmt.Errorf("ui.filter: %w", err)
	}
	c.UI.Filter = f.String()

	switch strings.ToLower(c.UI.Theme) {
	case "", "classic":
		c.UI.Theme = "classic"
	case "neon", "mono":
		c.UI.Theme = strings.ToLower(c.UI.Theme)
	default:
		return fmt.Errorf("ui.theme: unknown theme %q (want classic, neon or mono)", c.UI.Theme)
	}

	if _, err := tasklist.ParsePersistPolicy(c.Persist); err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}

// Filter is the parsed initial filter. Call after Finalize.
func (c *Config) Filter() model.Filter {
	f, _ := model.ParseFilter(c.UI.Filter)
	return f
}

// PersistPolicy is the parsed persist policy. Call after Finalize.
func (c *Config) PersistPolicy() tasklist.PersistPolicy {
	p, _ := tasklist.ParsePersistPolicy(c.Persist)
	return p
}

// StoreKind is the parsed backend kind. Call after Finalize.
func (c *Config) StoreKind() store.Kind {
	return store.Kind(c.Store.Kind)
}

// expandPath expands $VARS and a leading ~ in p.
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
