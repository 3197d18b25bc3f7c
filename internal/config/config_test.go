package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/psim-config/internal/form"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Initial != form.Defaults() {
		t.Fatalf("expected built-in defaults, got %+v", cfg.App.Initial)
	}
	if cfg.App.Output != "-" || cfg.App.Format != form.FormatJSON {
		t.Fatalf("unexpected output settings %q %q", cfg.App.Output, cfg.App.Format)
	}
	if !cfg.App.ShowFooter || cfg.App.WatchInterval != 1500*time.Millisecond {
		t.Fatalf("unexpected ui defaults %+v", cfg.App)
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"PSIM_CONFIG_TIMESTEPS=50",
		"PSIM_CONFIG_MODE=minpar",
		"PSIM_CONFIG_TRACE=true",
		"PSIM_CONFIG_WIDTH=80",
	}
	cfg, err := LoadArgs([]string{"-timesteps", "70", "-seed", "abc", "-format", "toml"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	initial := cfg.App.Initial
	if initial.Timesteps != 70 || initial.DerivationMode != form.MinParallel || initial.RandomSeed != "abc" {
		t.Fatalf("unexpected initial config %+v", initial)
	}
	if !cfg.Logging.Trace || cfg.App.Width != 80 || cfg.App.Format != form.FormatTOML {
		t.Fatalf("expected env and flag values applied, got %+v", cfg)
	}
	if cfg.Flags["timesteps"] != "70" {
		t.Fatalf("expected flag snapshot, got %v", cfg.Flags)
	}
}

func TestLoadArgsDefaultsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.toml")
	content := strings.Join([]string{
		`derivationMode = "maxpar"`,
		`timesteps = 250`,
		`updateInterval = 40`,
		`enableLogging = true`,
		`scene = "/data/scene.xml"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs([]string{"-defaults", path, "-update-interval", "90"}, []string{"PSIM_CONFIG_SCENE=/env/scene.xml"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	initial := cfg.App.Initial
	if initial.DerivationMode != form.MaxParallel || initial.Timesteps != 250 || !initial.EnableLogging {
		t.Fatalf("expected file values, got %+v", initial)
	}
	if initial.UpdateInterval != 90 {
		t.Fatalf("expected flag to beat file, got %d", initial.UpdateInterval)
	}
	if initial.Scene != "/env/scene.xml" {
		t.Fatalf("expected env to beat file, got %q", initial.Scene)
	}
}

func TestLoadArgsDefaultsFileMissing(t *testing.T) {
	_, err := LoadArgs([]string{"-defaults", filepath.Join(t.TempDir(), "none.toml")}, nil)
	if err == nil || !strings.Contains(err.Error(), "read defaults file") {
		t.Fatalf("expected defaults file error, got %v", err)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	if _, err := LoadArgs([]string{"-width", "-1"}, nil); err == nil {
		t.Fatalf("expected negative width rejected")
	}
	if _, err := LoadArgs([]string{"-format", "xml"}, nil); err == nil {
		t.Fatalf("expected unknown format rejected")
	}
	if _, err := LoadArgs([]string{"-unknown"}, nil); err == nil {
		t.Fatalf("expected unknown flag rejected")
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs([]string{"-mode", "maxpra"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("expected mode suggestion, got %v", err)
	}
	cfg, _ = LoadArgs([]string{"-update-interval", "0"}, nil)
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "updateInterval") {
		t.Fatalf("expected interval bound error, got %v", err)
	}
	cfg, _ = LoadArgs([]string{"-timesteps", "10000"}, nil)
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected upper bound accepted, got %v", err)
	}
}

func TestEnvFallbacksIgnoreGarbage(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"PSIM_CONFIG_HEIGHT=tall", "PSIM_CONFIG_FOOTER=nah", "PSIM_CONFIG_WATCH_INTERVAL=soon", "BROKEN"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Height != 0 || !cfg.App.ShowFooter || cfg.App.WatchInterval != 1500*time.Millisecond {
		t.Fatalf("expected fallbacks for unparsable env, got %+v", cfg.App)
	}
}
