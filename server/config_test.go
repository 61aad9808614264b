package server

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    func(c *Config)
	}{
		{
			name:    "json",
			file:    "c.json",
			content: `{"addr": "localhost:8080", "maxBody": 1024, "strict": true}`,
			want: func(c *Config) {
				c.Addr = "localhost:8080"
				c.MaxBody = 1024
				c.Strict = true
			},
		},
		{
			name:    "yaml",
			file:    "c.yaml",
			content: "addr: \"localhost:8081\"\nindent: 2\n",
			want: func(c *Config) {
				c.Addr = "localhost:8081"
				c.Indent = 2
			},
		},
		{
			name:    "toml",
			file:    "c.toml",
			content: "addr = \"localhost:8082\"\nmaxDepth = 50\n",
			want: func(c *Config) {
				c.Addr = "localhost:8082"
				c.MaxDepth = 50
			},
		},
		{
			name:    "empty object keeps defaults",
			file:    "c.json",
			content: `{}`,
			want:    func(*Config) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatal(err)
			}
			want := DefaultConfig()
			tt.want(want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		errConfig bool
	}{
		{"json unknown field", "c.json", `{"port": 1}`, true},
		{"json wrong type", "c.json", `{"addr": 1}`, false},
		{"json not object", "c.json", `[]`, true},
		{"json malformed", "c.json", `{"addr":`, false},
		{"toml unknown field", "c.toml", "port = 1\n", true},
		{"yaml unknown field", "c.yaml", "port: 1\n", false},
		{"invalid value", "c.json", `{"maxBody": 0}`, true},
		{"negative indent", "c.yml", "indent: -1\n", true},
		{"unknown extension", "c.ini", "addr=x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.errConfig && !errors.Is(err, ErrConfig) {
				t.Errorf("got %v, want ErrConfig", err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}
