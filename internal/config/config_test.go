package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"input_dir":"/data","format":"png","workers":3}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InputDir != "/data" || cfg.Format != "png" || cfg.Workers != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "input_dir: /data\nformat: tga\nthumbnail_size: 128\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InputDir != "/data" || cfg.Format != "tga" || cfg.ThumbnailSize != 128 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{InputDir: "/data", Format: "png"}
	cfg.Resolve(Flags{Format: "webp", Workers: 2})

	if cfg.Format != "webp" {
		t.Errorf("flag did not override format: %q", cfg.Format)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.OutputDir != filepath.Join("/data", "converted") {
		t.Errorf("OutputDir default = %q", cfg.OutputDir)
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	if cfg.Format != "webp" {
		t.Errorf("default format = %q", cfg.Format)
	}
	if cfg.Workers < 1 {
		t.Errorf("default workers = %d", cfg.Workers)
	}
}
