package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestWritePayloadToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := writePayload(path, []byte(`{"timesteps":1}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != `{"timesteps":1}` {
		t.Fatalf("unexpected file contents %q (%v)", data, err)
	}
}

func TestWritePayloadErrors(t *testing.T) {
	if err := writePayload(filepath.Join(t.TempDir(), "missing", "run.json"), []byte("x")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestCopyPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := copyPayload(&buf, []byte("abc")); err != nil || buf.String() != "abc" {
		t.Fatalf("unexpected copy result %q (%v)", buf.String(), err)
	}
}
