package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/growthchart/pkg/cache"
	"github.com/matzehuels/growthchart/pkg/config"
)

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir(config.CacheConfig{Dir: "/tmp/charts"})
	if err != nil || dir != "/tmp/charts" {
		t.Errorf("configured dir = %q, %v", dir, err)
	}

	dir, err = cacheDir(config.CacheConfig{})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestNewCache(t *testing.T) {
	ctx := t.Context()

	c, err := newCache(ctx, config.CacheConfig{}, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("--no-cache = %T, want cache.NullCache", c)
	}

	dir := t.TempDir()
	c, err = newCache(ctx, config.CacheConfig{Dir: dir}, false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != dir {
		t.Errorf("file cache = %T", c)
	}

	if _, err := newCache(ctx, config.CacheConfig{Backend: "memcached"}, false); err == nil {
		t.Error("unknown backend should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	cfgPath := filepath.Join(dir, "growthchart.toml")

	cfg := config.Default()
	cfg.Cache.Dir = cacheDir
	if err := config.Save(cfgPath, cfg); err != nil {
		t.Fatal(err)
	}

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(t.Context(), "layout:abc", []byte("{}"), 0); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", cfgPath, "cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != cacheDir {
		t.Errorf("cache path = %q, want %q", out.String(), cacheDir)
	}

	root = New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := fc.Get(t.Context(), "layout:abc"); ok {
		t.Error("entry survived cache clear")
	}
}
