package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and every ONCHANGE_* variable at a clean state.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvDebounce, "")
	t.Setenv(EnvHistoryDB, "")
	t.Setenv(EnvLogLevel, "")

	return home
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Watch.Debounce)
	}
	if cfg.Watch.Recursive {
		t.Error("Recursive = true, want false")
	}
	if !cfg.Display.AltScreen {
		t.Error("AltScreen = false, want true")
	}
	if cfg.History.DBPath == "" {
		t.Error("DBPath not set")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %s, want warn", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid default config",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero debounce",
			mutate:  func(c *Config) { c.Watch.Debounce = 0 },
			wantErr: ErrInvalidDebounce,
		},
		{
			name:    "negative threshold",
			mutate:  func(c *Config) { c.Watch.CircuitBreakerThreshold = -1 },
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "zero max records",
			mutate:  func(c *Config) { c.History.MaxRecords = 0 },
			wantErr: ErrInvalidMaxRecords,
		},
		{
			name:    "history without path",
			mutate:  func(c *Config) { c.History.DBPath = "" },
			wantErr: ErrNoHistoryPath,
		},
		{
			name: "disabled history without path",
			mutate: func(c *Config) {
				c.History.Enabled = false
				c.History.DBPath = ""
			},
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			content: `
watch:
  debounce: 250ms
  recursive: true
  circuit_breaker_threshold: 9
display:
  alt_screen: false
  color: false
history:
  enabled: true
  db_path: /tmp/runs.db
  max_records: 50
logging:
  level: debug
  output: stdout
  format: json
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Watch.Debounce != 250*time.Millisecond {
					t.Errorf("Debounce = %v, want 250ms", cfg.Watch.Debounce)
				}
				if !cfg.Watch.Recursive {
					t.Error("Recursive = false, want true")
				}
				if cfg.Watch.CircuitBreakerThreshold != 9 {
					t.Errorf("Threshold = %d, want 9", cfg.Watch.CircuitBreakerThreshold)
				}
				if cfg.Display.AltScreen || cfg.Display.Color {
					t.Error("display flags not overridden")
				}
				if cfg.History.DBPath != "/tmp/runs.db" || cfg.History.MaxRecords != 50 {
					t.Errorf("History = %+v", cfg.History)
				}
				if cfg.Logging.Format != "json" {
					t.Errorf("Format = %s, want json", cfg.Logging.Format)
				}
			},
		},
		{
			name: "partial config keeps defaults",
			content: `
display:
  alt_screen: false
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Display.AltScreen {
					t.Error("AltScreen = true, want false")
				}
				if !cfg.Display.Color {
					t.Error("Color = false, want default true")
				}
				if cfg.Watch.Debounce != 500*time.Millisecond {
					t.Errorf("Debounce = %v, want default 500ms", cfg.Watch.Debounce)
				}
			},
		},
		{
			name:    "empty file",
			content: "\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Watch.Debounce != 500*time.Millisecond {
					t.Errorf("Debounce = %v, want default", cfg.Watch.Debounce)
				}
			},
		},
		{
			name:    "invalid yaml",
			content: `invalid: yaml: content: [`,
			wantErr: ErrInvalidYAML,
		},
		{
			name:    "unknown key",
			content: "watch:\n  debounse: 1s\n",
			wantErr: ErrInvalidYAML,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := filepath.Join(tmpDir, tt.name+".yaml")
			if err := os.WriteFile(filePath, []byte(tt.content), 0600); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			cfg, err := NewLoader("").LoadFromFile(filePath)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadFromFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("LoadFromFile() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadFromFile() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	loader := NewLoader("")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loader.Path() != "" {
		t.Errorf("Path() = %s, want empty", loader.Path())
	}
	if want := filepath.Join(home, ".config", "onchange", "history.db"); cfg.History.DBPath != want {
		t.Errorf("DBPath = %s, want %s", cfg.History.DBPath, want)
	}
}

func TestLoadFromHomeConfig(t *testing.T) {
	home := isolate(t)

	path := filepath.Join(home, ".config", "onchange", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("watch:\n  debounce: 2s\n"), 0600); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader("")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
	if loader.Path() != path {
		t.Errorf("Path() = %s, want %s", loader.Path(), path)
	}
}

func TestLoadFromConfigEnv(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: error\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Level = %s, want error", cfg.Logging.Level)
	}
}

func TestLoadInvalidFileFailsValidation(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("watch:\n  debounce: 0s\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); !errors.Is(err, ErrInvalidDebounce) {
		t.Errorf("LoadFromFile() error = %v, want ErrInvalidDebounce", err)
	}
}

func TestEnvVarOverrides(t *testing.T) {
	isolate(t)

	t.Setenv(EnvDebounce, "75ms")
	t.Setenv(EnvHistoryDB, "/env/history.db")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Watch.Debounce != 75*time.Millisecond {
		t.Errorf("Debounce = %v, want 75ms", cfg.Watch.Debounce)
	}
	if cfg.History.DBPath != "/env/history.db" {
		t.Errorf("DBPath = %s, want /env/history.db", cfg.History.DBPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %s, want debug", cfg.Logging.Level)
	}
}

func TestEnvVarInvalidDebounce(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDebounce, "soon")

	if _, err := Load(); !errors.Is(err, ErrInvalidEnv) {
		t.Errorf("Load() error = %v, want ErrInvalidEnv", err)
	}
}

func TestSave(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Watch.Debounce = 1500 * time.Millisecond
	cfg.Display.Color = false

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if loaded.Watch.Debounce != 1500*time.Millisecond {
		t.Errorf("Debounce = %v, want 1.5s", loaded.Watch.Debounce)
	}
	if loaded.Display.Color {
		t.Error("Color = true, want false")
	}
}

func TestSaveInvalid(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "shout"

	if err := Save(cfg, filepath.Join(t.TempDir(), "c.yaml")); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Save() error = %v, want ErrInvalidLogLevel", err)
	}
}

func BenchmarkValidate(b *testing.B) {
	cfg := Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := cfg.Validate(); err != nil {
			b.Fatal(err)
		}
	}
}
