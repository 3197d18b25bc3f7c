package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/psim-config/internal/app"
	"github.com/atomicstack/psim-config/internal/form"
	"github.com/spf13/viper"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envWidth          = "PSIM_CONFIG_WIDTH"
	envHeight         = "PSIM_CONFIG_HEIGHT"
	envShowFooter     = "PSIM_CONFIG_FOOTER"
	envVerbose        = "PSIM_CONFIG_VERBOSE"
	envTrace          = "PSIM_CONFIG_TRACE"
	envLogFile        = "PSIM_CONFIG_LOG_FILE"
	envDefaults       = "PSIM_CONFIG_DEFAULTS"
	envScene          = "PSIM_CONFIG_SCENE"
	envRules          = "PSIM_CONFIG_RULES"
	envMode           = "PSIM_CONFIG_MODE"
	envTimesteps      = "PSIM_CONFIG_TIMESTEPS"
	envUpdateInterval = "PSIM_CONFIG_UPDATE_INTERVAL"
	envEnableLogging  = "PSIM_CONFIG_LOGGING"
	envSeed           = "PSIM_CONFIG_SEED"
	envOutput         = "PSIM_CONFIG_OUTPUT"
	envFormat         = "PSIM_CONFIG_FORMAT"
	envWatchInterval  = "PSIM_CONFIG_WATCH_INTERVAL"
)

// Keys of the defaults file.
const (
	keyScene          = "scene"
	keyRules          = "rules"
	keyMode           = "derivationMode"
	keyTimesteps      = "timesteps"
	keyUpdateInterval = "updateInterval"
	keyEnableLogging  = "enableLogging"
	keySeed           = "randomSeed"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
//
// Simulator parameters resolve in order: flag, environment, defaults file,
// built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("psim-config", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show informational status messages")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	defaults := fs.String("defaults", envOrDefault(env, envDefaults, ""), "TOML, YAML or JSON file with initial simulator parameters")
	output := fs.String("output", envOrDefault(env, envOutput, "-"), "payload destination (- for stdout)")
	format := fs.String("format", envOrDefault(env, envFormat, string(form.FormatJSON)), "payload format: json or toml")
	watch := fs.Duration("watch-interval", envOrDuration(env, envWatchInterval, 1500*time.Millisecond), "how often accepted files are checked for changes")

	base := form.Defaults()
	scene := fs.String("scene", envOrDefault(env, envScene, base.Scene), "initial scene file")
	rules := fs.String("rules", envOrDefault(env, envRules, base.Rules), "initial rule file")
	mode := fs.String("mode", envOrDefault(env, envMode, string(base.DerivationMode)), "derivation mode: minpar or maxpar")
	timesteps := fs.Int("timesteps", envOrInt(env, envTimesteps, base.Timesteps), "number of computation steps")
	interval := fs.Int("update-interval", envOrInt(env, envUpdateInterval, base.UpdateInterval), "update interval in milliseconds")
	enableLogging := fs.Bool("logging", envOrBool(env, envEnableLogging, base.EnableLogging), "enable simulator logging")
	seed := fs.String("seed", envOrDefault(env, envSeed, base.RandomSeed), "random seed")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	payloadFormat, err := form.ParseFormat(*format)
	if err != nil {
		return Config{}, err
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	for name, key := range map[string]string{
		"scene":           envScene,
		"rules":           envRules,
		"mode":            envMode,
		"timesteps":       envTimesteps,
		"update-interval": envUpdateInterval,
		"logging":         envEnableLogging,
		"seed":            envSeed,
	} {
		if strings.TrimSpace(env[key]) != "" {
			explicit[name] = true
		}
	}

	initial := form.SimulatorConfig{
		Scene:          *scene,
		Rules:          *rules,
		DerivationMode: form.DerivationMode(strings.ToLower(strings.TrimSpace(*mode))),
		Timesteps:      *timesteps,
		UpdateInterval: *interval,
		EnableLogging:  *enableLogging,
		RandomSeed:     *seed,
	}
	if strings.TrimSpace(*defaults) != "" {
		file, err := readDefaults(*defaults)
		if err != nil {
			return Config{}, err
		}
		initial = mergeDefaults(initial, file, explicit)
	}

	cfg := Config{
		App: app.Config{
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			Verbose:       *verbose,
			Initial:       initial,
			Output:        *output,
			Format:        payloadFormat,
			WatchInterval: *watch,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"footer":         strconv.FormatBool(*footer),
			"trace":          strconv.FormatBool(*trace),
			"verbose":        strconv.FormatBool(*verbose),
			"logFile":        *logFile,
			"defaults":       *defaults,
			"output":         *output,
			"format":         string(payloadFormat),
			"watchInterval":  watch.String(),
			"scene":          initial.Scene,
			"rules":          initial.Rules,
			"mode":           string(initial.DerivationMode),
			"timesteps":      strconv.Itoa(initial.Timesteps),
			"updateInterval": strconv.Itoa(initial.UpdateInterval),
			"logging":        strconv.FormatBool(initial.EnableLogging),
			"seed":           initial.RandomSeed,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func readDefaults(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read defaults file %s: %w", path, err)
	}
	return v, nil
}

func mergeDefaults(cfg form.SimulatorConfig, v *viper.Viper, explicit map[string]bool) form.SimulatorConfig {
	if !explicit["scene"] && v.IsSet(keyScene) {
		cfg.Scene = v.GetString(keyScene)
	}
	if !explicit["rules"] && v.IsSet(keyRules) {
		cfg.Rules = v.GetString(keyRules)
	}
	if !explicit["mode"] && v.IsSet(keyMode) {
		cfg.DerivationMode = form.DerivationMode(strings.ToLower(strings.TrimSpace(v.GetString(keyMode))))
	}
	if !explicit["timesteps"] && v.IsSet(keyTimesteps) {
		cfg.Timesteps = v.GetInt(keyTimesteps)
	}
	if !explicit["update-interval"] && v.IsSet(keyUpdateInterval) {
		cfg.UpdateInterval = v.GetInt(keyUpdateInterval)
	}
	if !explicit["logging"] && v.IsSet(keyEnableLogging) {
		cfg.EnableLogging = v.GetBool(keyEnableLogging)
	}
	if !explicit["seed"] && v.IsSet(keySeed) {
		cfg.RandomSeed = v.GetString(keySeed)
	}
	return cfg
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks the initial simulator parameters against the field bounds.
func Validate(cfg Config) error {
	initial := cfg.App.Initial
	if _, err := form.ParseDerivationMode(string(initial.DerivationMode)); err != nil {
		return err
	}
	for _, check := range []struct {
		field form.IntField
		value int
	}{
		{form.TimestepsField, initial.Timesteps},
		{form.UpdateIntervalField, initial.UpdateInterval},
	} {
		if !check.field.Contains(check.value) {
			return fmt.Errorf("%s must be within [%d, %d] (got %d)", check.field.Name, check.field.Min, check.field.Max, check.value)
		}
	}
	if cfg.App.WatchInterval <= 0 {
		return fmt.Errorf("watch-interval must be > 0 (got %s)", cfg.App.WatchInterval)
	}
	return nil
}
