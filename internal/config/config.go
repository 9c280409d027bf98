// Package config resolves fwver settings from flags, FWVER_* environment
// variables, the YAML config file, and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tbckr/fwver/internal/appdir"
)

// EnvPrefix is prepended to every key to form its environment variable,
// e.g. FWVER_PREFIX or FWVER_OVERRIDE.
const EnvPrefix = "FWVER"

// ErrUnknownKey is returned for keys that are not part of the config schema.
var ErrUnknownKey = errors.New("unknown config key")

// Config is the fully resolved configuration.
type Config struct {
	// ConfigFile is the path the settings were read from. It may not exist.
	ConfigFile string

	Verbose bool
	Output  string

	// Describe query
	Git         string
	Prefix      string
	NoPrefix    bool
	Sentinel    string
	Override    string
	Match       []string
	Abbrev      int
	Dirty       bool
	FirstParent bool
	Timeout     time.Duration
	Concurrency int

	// Compile-time symbol
	Macro  string
	Format string
	Symbol string
}

// Default values. They double as flag defaults.
const (
	DefaultOutput      = "text"
	DefaultGit         = "git"
	DefaultPrefix      = "v"
	DefaultSentinel    = "dev"
	DefaultMacro       = "FIRMWARE_VERSION"
	DefaultFormat      = "cflag"
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 4
)

// DefaultConfigPath returns the OS-appropriate config file path.
func DefaultConfigPath() (string, error) {
	dir, err := appdir.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// RegisterFlags adds every config flag to fs. Flag names are the config keys
// with underscores replaced by hyphens.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: $FWVER_CONFIG_DIR/config.yaml or $XDG_CONFIG_HOME/fwver/config.yaml)")
	fs.BoolP("verbose", "v", false, "enable verbose logging (debug level)")
	fs.StringP("output", "o", DefaultOutput, "output format: text, json, plain")

	fs.String("git", DefaultGit, "git binary used for the describe query")
	fs.String("prefix", DefaultPrefix, "version prefix stripped from tag names")
	fs.Bool("no-prefix", false, "keep the version prefix")
	fs.String("sentinel", DefaultSentinel, "version used when no git metadata is available")
	fs.String("override", "", "use this version instead of querying git")
	fs.StringSlice("match", nil, "only consider tags matching this glob (repeatable)")
	fs.Int("abbrev", 0, "abbreviated commit hash length (0: git default)")
	fs.Bool("dirty", false, "append -dirty when the worktree has local changes")
	fs.Bool("first-parent", false, "follow only the first parent of merge commits")
	fs.Duration("timeout", DefaultTimeout, "timeout for each git invocation")
	fs.IntP("concurrency", "c", DefaultConcurrency, "number of repositories described in parallel")

	fs.StringP("macro", "m", DefaultMacro, "name of the compile-time symbol")
	fs.StringP("format", "f", DefaultFormat, "define format: cflag, header, ldflags, env")
	fs.String("symbol", "", "Go symbol set by the ldflags format, e.g. main.version")
}

// Load resolves the configuration. Missing config files are not an error and
// are not created; build hooks must work on read-only home directories.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	configFile := ""
	if f := flags.Lookup("config"); f != nil {
		configFile = f.Value.String()
	}
	if configFile == "" {
		var err error
		configFile, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range ValidKeys() {
		if f := flags.Lookup(flagName(key)); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %q: %w", f.Name, err)
			}
		}
	}

	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	if _, err := os.Stat(configFile); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	return &Config{
		ConfigFile:  configFile,
		Verbose:     v.GetBool("verbose"),
		Output:      v.GetString("output"),
		Git:         v.GetString("git"),
		Prefix:      v.GetString("prefix"),
		NoPrefix:    v.GetBool("no_prefix"),
		Sentinel:    v.GetString("sentinel"),
		Override:    v.GetString("override"),
		Match:       v.GetStringSlice("match"),
		Abbrev:      v.GetInt("abbrev"),
		Dirty:       v.GetBool("dirty"),
		FirstParent: v.GetBool("first_parent"),
		Timeout:     v.GetDuration("timeout"),
		Concurrency: v.GetInt("concurrency"),
		Macro:       v.GetString("macro"),
		Format:      v.GetString("format"),
		Symbol:      v.GetString("symbol"),
	}, nil
}

// setDefaults keeps Load usable with a FlagSet that lacks some flags.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("git", DefaultGit)
	v.SetDefault("prefix", DefaultPrefix)
	v.SetDefault("sentinel", DefaultSentinel)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("macro", DefaultMacro)
	v.SetDefault("format", DefaultFormat)
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
