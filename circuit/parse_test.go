package circuit

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadAutoDetectsBenchExtension(t *testing.T) {
	path := writeTemp(t, "circuit.bench", "INPUT(a)\nOUTPUT(out)\nout = NOT(a)\n")
	a, err := Load(path, FormatAuto)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if a.NumInputs() != 1 {
		t.Fatalf("expected 1 input, got %d", a.NumInputs())
	}
}

func TestLoadAutoDetectsAagExtension(t *testing.T) {
	path := writeTemp(t, "circuit.aag", "aag 1 1 0 1 0\n2\n2\n")
	a, err := Load(path, FormatAuto)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if a.NumInputs() != 1 {
		t.Fatalf("expected 1 input, got %d", a.NumInputs())
	}
}

func TestLoadRejectsUnrecognizedExtension(t *testing.T) {
	path := writeTemp(t, "circuit.txt", "not a circuit")
	_, err := Load(path, FormatAuto)
	if err == nil {
		t.Fatal("expected an error for an unrecognized extension")
	}
}

func TestLoadHonorsExplicitFormatOverExtension(t *testing.T) {
	path := writeTemp(t, "circuit.txt", "INPUT(a)\nOUTPUT(out)\nout = NOT(a)\n")
	a, err := Load(path, FormatBench)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if a.NumInputs() != 1 {
		t.Fatalf("expected 1 input, got %d", a.NumInputs())
	}
}
