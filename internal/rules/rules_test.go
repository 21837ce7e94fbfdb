package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for _, name := range []string{"price", "ccu", "owners", "reviewCount", "positiveRate", "releaseDate", "tags"} {
		if _, err := cfg.Attribute(name); err != nil {
			t.Errorf("missing default rule for %q", name)
		}
	}
	if cfg.MaxAttempts != 10 {
		t.Errorf("MaxAttempts = %d, want 10", cfg.MaxAttempts)
	}
	if cfg.Colors["exact"] == "" {
		t.Error("expected a color for status exact")
	}
	price, _ := cfg.Attribute("price")
	if price.Mode != Absolute {
		t.Errorf("price mode = %q, want absolute", price.Mode)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := `
attributes:
  price: {mode: absolute, exact: 2, partial: 4, close: 8}
maxAttempts: 6
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	r, err := cfg.Attribute("price")
	if err != nil {
		t.Fatal(err)
	}
	if r.Exact != 2 || r.Partial != 4 || r.Close != 8 {
		t.Errorf("unexpected bands: %+v", r)
	}
	if cfg.MaxAttempts != 6 {
		t.Errorf("MaxAttempts = %d, want 6", cfg.MaxAttempts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		wantErr string
	}{
		{
			name: "ascending ok",
			rule: Rule{Mode: Absolute, Exact: 1, Partial: 5, Close: 15},
		},
		{
			name:    "non-ascending bands rejected",
			rule:    Rule{Mode: Absolute, Exact: 5, Partial: 1, Close: 15},
			wantErr: "bands must ascend",
		},
		{
			name:    "negative exact rejected",
			rule:    Rule{Mode: Relative, Exact: -1, Partial: 1, Close: 2},
			wantErr: "exact must be >= 0",
		},
		{
			name: "overlap descending ok",
			rule: Rule{Mode: SetOverlap, Exact: 75, Partial: 50, Close: 25},
		},
		{
			name:    "overlap ascending rejected",
			rule:    Rule{Mode: SetOverlap, Exact: 25, Partial: 50, Close: 75},
			wantErr: "overlap bands must descend",
		},
		{
			name:    "unknown mode rejected",
			rule:    Rule{Mode: "fuzzy", Exact: 1, Partial: 2, Close: 3},
			wantErr: "unknown mode",
		},
		{
			name: "text needs no bands",
			rule: Rule{Mode: ExactText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Attributes: map[string]Rule{"attr": tt.rule}}
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{Attributes: map[string]Rule{
		"a": {Mode: Absolute, Exact: 9, Partial: 1, Close: 2},
		"b": {Mode: "nope"},
	}}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"a:", "b:"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
