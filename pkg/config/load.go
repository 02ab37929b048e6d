package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/growthchart/pkg/errors"
)

// Load reads a TOML configuration file on top of Default and validates it.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return File{}, fmt.Errorf("read config: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads TOML from r on top of Default and validates it. Unknown keys
// are rejected.
func Decode(r io.Reader) (File, error) {
	f := Default()
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return File{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return File{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Save writes f as TOML, creating parent directories as needed.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Encode writes f as TOML to w.
func Encode(w io.Writer, f File) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Validate checks the file version, the layout options and the ambient
// durations.
func (f File) Validate() error {
	if f.Version != CurrentVersion {
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config version %d (want %d)", f.Version, CurrentVersion)
	}
	if err := f.Layout.Validate(); err != nil {
		return err
	}
	for _, d := range [][2]string{
		{"cache.ttl", f.Cache.TTL},
		{"server.read_timeout", f.Server.ReadTimeout},
		{"server.write_timeout", f.Server.WriteTimeout},
	} {
		if d[1] == "" {
			continue
		}
		if _, err := time.ParseDuration(d[1]); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", d[0])
		}
	}
	switch f.Cache.Backend {
	case "", "file", "redis", "mongo", "none":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", f.Cache.Backend)
	}
	switch f.Render.Measurer {
	case "", "opentype", "heuristic":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown measurer %q", f.Render.Measurer)
	}
	return nil
}

// TTLOr returns the parsed cache TTL, or fallback when unset.
func (c CacheConfig) TTLOr(fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(c.TTL); err == nil && d > 0 {
		return d
	}
	return fallback
}

// Duration parses s, returning fallback when s is empty or invalid.
func Duration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return fallback
}
