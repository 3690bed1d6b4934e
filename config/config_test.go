package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	data := []byte(`
name: warmup
initial: 10
strategy: every
actions:
  - op: increment
  - op: add
    amount: 5
  - op: decrement
`)
	sc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if sc.Name != "warmup" {
		t.Errorf("Name = %q, want %q", sc.Name, "warmup")
	}
	if sc.Initial == nil || *sc.Initial != 10 {
		t.Errorf("Initial = %v, want 10", sc.Initial)
	}
	if sc.Strategy != "every" {
		t.Errorf("Strategy = %q, want %q", sc.Strategy, "every")
	}
	if len(sc.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, want 3", len(sc.Actions))
	}
	if sc.Actions[1].Op != OpAdd || sc.Actions[1].Amount != 5 {
		t.Errorf("Actions[1] = %+v, want {add 5}", sc.Actions[1])
	}
}

func TestParse_Defaults(t *testing.T) {
	data := []byte(`
actions:
  - op: increment
`)
	sc, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if sc.Name != "scenario" {
		t.Errorf("Name = %q, want %q", sc.Name, "scenario")
	}
	if sc.Strategy != "latest" {
		t.Errorf("Strategy = %q, want %q", sc.Strategy, "latest")
	}
	if sc.Initial != nil {
		t.Errorf("Initial = %v, want nil", sc.Initial)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "bad strategy",
			data:    "strategy: newest\nactions:\n  - op: increment\n",
			wantErr: "strategy",
		},
		{
			name:    "no actions",
			data:    "name: empty\n",
			wantErr: "at least one action",
		},
		{
			name:    "unknown op",
			data:    "actions:\n  - op: teleport\n",
			wantErr: "unknown op",
		},
		{
			name:    "missing op",
			data:    "actions:\n  - amount: 3\n",
			wantErr: "op is required",
		},
		{
			name:    "add without amount",
			data:    "actions:\n  - op: add\n",
			wantErr: "non-zero amount",
		},
		{
			name:    "amount on increment",
			data:    "actions:\n  - op: increment\n    amount: 3\n",
			wantErr: "amount is only valid",
		},
		{
			name:    "not yaml",
			data:    "{{nope",
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := "name: file\nactions:\n  - op: increment\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if sc.Name != "file" {
		t.Errorf("Name = %q, want %q", sc.Name, "file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
}
