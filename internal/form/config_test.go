package form

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseDerivationMode(t *testing.T) {
	mode, err := ParseDerivationMode(" MaxPar ")
	if err != nil || mode != MaxParallel {
		t.Fatalf("expected maxpar, got %q (%v)", mode, err)
	}
	mode, err = ParseDerivationMode("")
	if err != nil || mode != "" {
		t.Fatalf("expected empty mode accepted, got %q (%v)", mode, err)
	}
}

func TestParseDerivationModeSuggests(t *testing.T) {
	_, err := ParseDerivationMode("minpra")
	if err == nil || !strings.Contains(err.Error(), `did you mean "minpar"`) {
		t.Fatalf("expected suggestion for minpar, got %v", err)
	}
	_, err = ParseDerivationMode("sequential")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("expected plain error for distant value, got %v", err)
	}
}

func TestDerivationModeLabel(t *testing.T) {
	if MinParallel.Label() != "Min. parallelism" {
		t.Fatalf("unexpected label %q", MinParallel.Label())
	}
	if DerivationMode("odd").Label() != "odd" {
		t.Fatalf("expected unknown mode to render raw")
	}
}

func TestCheckRequiresFilesAndMode(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Check(); err == nil || !strings.Contains(err.Error(), "scene") {
		t.Fatalf("expected missing scene error, got %v", err)
	}
	cfg.Scene = "scene.xml"
	cfg.Rules = "rules.xml"
	if err := cfg.Check(); err == nil || !strings.Contains(err.Error(), "derivation mode") {
		t.Fatalf("expected missing mode error, got %v", err)
	}
	cfg.DerivationMode = MaxParallel
	if err := cfg.Check(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestEncodeJSON(t *testing.T) {
	cfg := SimulatorConfig{DerivationMode: MinParallel, Timesteps: 10, UpdateInterval: 5, EnableLogging: true, RandomSeed: "abc"}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, FormatJSON); err != nil {
		t.Fatalf("encode: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["derivationMode"] != "minpar" || decoded["timesteps"] != float64(10) || decoded["enableLogging"] != true {
		t.Fatalf("unexpected payload %v", decoded)
	}
	if _, ok := decoded["scene"]; ok {
		t.Fatalf("expected empty scene omitted")
	}
}

func TestEncodeTOML(t *testing.T) {
	cfg := SimulatorConfig{Scene: "s.xml", DerivationMode: MaxParallel, Timesteps: 3, UpdateInterval: 1}
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, FormatTOML); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"scene = 's.xml'", "derivationMode = 'maxpar'", "timesteps = 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatJSON {
		t.Fatalf("expected json default, got %q (%v)", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Fatalf("expected yaml rejected")
	}
}
