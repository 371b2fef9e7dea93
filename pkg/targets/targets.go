// Package targets loads mirror-target manifests (YAML or JSON) for the
// mirror CLI: which URLs to mirror and where each one lands on disk.
package targets

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Target is one url-to-path mirror entry.
type Target struct {
	ID   string `json:"id" yaml:"id"`
	URL  string `json:"url" yaml:"url"`
	Path string `json:"path" yaml:"path"`
	// ContentCheck, when true, makes the mirror CLI log a warning if
	// the stored response was an HTTP error status.
	ContentCheck bool `json:"content_check" yaml:"content_check"`
}

type manifest struct {
	Targets []Target `json:"targets" yaml:"targets"`
}

// Load reads and validates a target manifest from file.
func Load(path string) ([]Target, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("targets file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	m, err := parseManifest(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	if len(m.Targets) == 0 {
		return nil, errors.New("targets file contains no targets entries")
	}

	seen := make(map[string]struct{}, len(m.Targets))
	for i := range m.Targets {
		t := sanitizeTarget(m.Targets[i])
		if err := validateTarget(t); err != nil {
			return nil, fmt.Errorf("target[%d]: %w", i, err)
		}
		if _, exists := seen[t.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", t.ID)
		}
		m.Targets[i] = t
		seen[t.ID] = struct{}{}
	}

	return m.Targets, nil
}

func parseManifest(data []byte, ext string) (manifest, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		if m, err := unmarshalManifest(d.name, data, d.fn); err == nil {
			return m, nil
		}
	}

	return manifest{}, errors.New("targets file format not recognized (expected YAML or JSON)")
}

type unmarshalFn func([]byte, any) error

func unmarshalManifest(name string, data []byte, fn unmarshalFn) (manifest, error) {
	var m manifest
	if err := fn(data, &m); err != nil {
		return manifest{}, fmt.Errorf("decode %s targets: %w", name, err)
	}
	return m, nil
}

func sanitizeTarget(t Target) Target {
	t.ID = strings.TrimSpace(t.ID)
	t.URL = strings.TrimSpace(t.URL)
	t.Path = strings.TrimSpace(t.Path)
	return t
}

func validateTarget(t Target) error {
	if t.ID == "" {
		return errors.New("id is required")
	}
	if t.URL == "" {
		return fmt.Errorf("url is required for target %q", t.ID)
	}
	u, err := url.Parse(t.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url for target %q is not absolute: %s", t.ID, t.URL)
	}
	if t.Path == "" {
		return fmt.Errorf("path is required for target %q", t.ID)
	}
	return nil
}
