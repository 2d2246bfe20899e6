package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if cfg.Corpus.MongoURI != want.Corpus.MongoURI {
		t.Errorf("MongoURI = %q", cfg.Corpus.MongoURI)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[corpus]
mongo_uri = "mongodb://db:27017"
database = "outlooks"

[cache]
backend = "redis"
redis_addr = "cache:6379"

[semantic]
projection_url = "http://projector:5000/project"

[canvas]
width = 1200.0
height = 900.0
seed = 7
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Corpus.MongoURI != "mongodb://db:27017" || cfg.Corpus.Database != "outlooks" {
		t.Errorf("corpus = %+v", cfg.Corpus)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Corpus.Collection != "outlooks" {
		t.Errorf("Collection = %q, want default", cfg.Corpus.Collection)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Semantic.ProjectionURL != "http://projector:5000/project" {
		t.Errorf("semantic = %+v", cfg.Semantic)
	}
	if cfg.Canvas.Width != 1200 || cfg.Canvas.Seed != 7 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLoadRejectsBadServiceURL(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"classifier scheme", "[sentiment]\nclassifier_url = \"ftp://classifier:9000\"\n"},
		{"projection scheme", "[semantic]\nprojection_url = \"projector:5000\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected error for non-http service URL")
			}
		})
	}
}

func TestLoadCacheScope(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
scope = "prod:"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Scope != "prod:" {
		t.Errorf("Scope = %q, want prod:", cfg.Cache.Scope)
	}
	// Unset scope stays empty so keys carry no prefix.
	if Default().Cache.Scope != "" {
		t.Error("default scope must be empty")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `[cache`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/termrain-test"
	dir, err := cfg.CacheDir()
	if err != nil || dir != "/tmp/termrain-test" {
		t.Errorf("CacheDir = %q, %v", dir, err)
	}

	cfg.Cache.Dir = ""
	dir, err = cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	if filepath.Base(dir) != "termrain" {
		t.Errorf("default dir = %q, want termrain suffix", dir)
	}
}
