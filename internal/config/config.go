package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/assetgrid/internal/app"
	"github.com/atomicstack/assetgrid/internal/grid"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// File is the config file that was read, if any.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const envPrefix = "ASSETGRID_"

const (
	defaultWatch   = 2 * time.Second
	defaultRetries = 2
	defaultTimeout = 30 * time.Second
)

var errNoSource = errors.New("no catalog source: pass --source or set ASSETGRID_SOURCE")

// RegisterFlags declares every option on fs. Values not given on the command
// line fall back to the environment, then the config file, then these
// defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	g := app.DefaultGrid()
	fs.String("config", "", "YAML config file")
	fs.StringP("source", "s", "", "catalog.json location (path, file:// or http(s) URL)")
	fs.String("library-root", "", "directory item folders are relative to")
	fs.String("socket", "", "path to the tmux socket (overrides environment detection)")
	fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	fs.Int("item-min-width", g.ItemMinWidth, "minimum card width in cells")
	fs.Int("item-height", g.ItemHeight, "card height in rows")
	fs.Int("gap", g.Gap, "space between cards")
	fs.Int("overscan", g.OverscanRows, "rows rendered beyond the viewport")
	fs.Bool("square", g.Square, "make cards as tall as they are wide")
	fs.Duration("watch", defaultWatch, "catalog change poll interval (0 disables)")
	fs.Int("retries", defaultRetries, "HTTP retries per catalog fetch")
	fs.Duration("timeout", defaultTimeout, "HTTP timeout per request")
	fs.Bool("footer", false, "enable footer hint row (disabled by default)")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
	fs.Bool("verbose", false, "show success messages for actions")
	fs.String("log-file", "", "path to the log file")
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("assetgrid", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := Resolve(fs, fs.Args(), environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// Resolve builds the configuration from a parsed flag set. The first
// positional argument names the catalog source when no other layer does.
func Resolve(fs *pflag.FlagSet, positional []string, environ []string) (Config, error) {
	r := resolver{fs: fs, env: parseEnv(environ), flags: make(map[string]string)}
	file := r.getString("config")
	if file != "" {
		v := viper.New()
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
		r.file = v
	}

	width := r.getInt("width")
	height := r.getInt("height")
	if width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", width)
	}
	if height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", height)
	}
	watch := r.getDuration("watch")
	if watch < 0 {
		return Config{}, fmt.Errorf("watch must be >= 0 (got %s)", watch)
	}
	retries := r.getInt("retries")
	if retries < 0 {
		return Config{}, fmt.Errorf("retries must be >= 0 (got %d)", retries)
	}
	verbose := r.getBool("verbose")

	cfg := Config{
		App: app.Config{
			Source:      r.getString("source"),
			LibraryRoot: r.getString("library-root"),
			SocketPath:  r.getString("socket"),
			Width:       width,
			Height:      height,
			ShowFooter:  r.getBool("footer"),
			Verbose:     verbose,
			Grid: grid.Options{
				ItemMinWidth: r.getInt("item-min-width"),
				ItemHeight:   r.getInt("item-height"),
				Gap:          r.getInt("gap"),
				OverscanRows: r.getInt("overscan"),
				Square:       r.getBool("square"),
			}.Normalize(),
			Watch:   watch,
			Retries: retries,
			Timeout: r.getDuration("timeout"),
		},
		Logging: Logging{
			FilePath: r.getString("log-file"),
			Trace:    r.getBool("trace"),
		},
		Features: Features{
			Verbose: verbose,
		},
		File:  file,
		Flags: r.flags,
	}
	if cfg.App.Source == "" && len(positional) > 0 {
		cfg.App.Source = positional[0]
		cfg.Flags["source"] = positional[0]
	}
	return cfg, nil
}

// EnvKey returns the environment variable consulted for a flag.
func EnvKey(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// resolver applies flag > environment > config file > default precedence and
// records the winning value of every option it is asked for.
type resolver struct {
	fs    *pflag.FlagSet
	env   map[string]string
	file  *viper.Viper
	flags map[string]string
}

func (r resolver) changed(name string) bool {
	f := r.fs.Lookup(name)
	return f != nil && f.Changed
}

func (r resolver) inFile(name string) bool {
	return r.file != nil && r.file.IsSet(name)
}

func (r resolver) getString(name string) string {
	v, _ := r.fs.GetString(name)
	if !r.changed(name) {
		if r.inFile(name) {
			v = r.file.GetString(name)
		}
		v = envOrDefault(r.env, EnvKey(name), v)
	}
	r.flags[name] = v
	return v
}

func (r resolver) getInt(name string) int {
	v, _ := r.fs.GetInt(name)
	if !r.changed(name) {
		if r.inFile(name) {
			v = r.file.GetInt(name)
		}
		v = envOrInt(r.env, EnvKey(name), v)
	}
	r.flags[name] = strconv.Itoa(v)
	return v
}

func (r resolver) getBool(name string) bool {
	v, _ := r.fs.GetBool(name)
	if !r.changed(name) {
		if r.inFile(name) {
			v = r.file.GetBool(name)
		}
		v = envOrBool(r.env, EnvKey(name), v)
	}
	r.flags[name] = strconv.FormatBool(v)
	return v
}

func (r resolver) getDuration(name string) time.Duration {
	v, _ := r.fs.GetDuration(name)
	if !r.changed(name) {
		if r.inFile(name) {
			v = r.file.GetDuration(name)
		}
		v = envOrDuration(r.env, EnvKey(name), v)
	}
	r.flags[name] = v.String()
	return v
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Source) == "" {
		return errNoSource
	}
	return nil
}
