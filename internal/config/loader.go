package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory name under $HOME.
const AppDir = ".lines"

// SearchPaths lists the files LoadLines tries when no path is given,
// most specific first.
func SearchPaths() []string {
	return lo.Compact([]string{
		UserPath("configs", "lines.yaml"),
		filepath.Join("configs", "lines.yaml"),
	})
}

// LoadLines loads the Lines configuration from customPath, or from the
// first readable file in SearchPaths, or from the embedded default.
// Keys missing from a file keep their default values. Only an explicit
// customPath can fail; the other locations are skipped when unreadable.
func LoadLines(customPath string) (LinesConfig, error) {
	if customPath != "" {
		return loadFile(customPath)
	}
	for _, path := range SearchPaths() {
		if cfg, err := loadFile(path); err == nil {
			return cfg, nil
		}
	}
	if cfg, err := parseLines(defaultLinesYAML); err == nil {
		return cfg, nil
	}
	cfg := DefaultLinesConfig()
	cfg.Normalize()
	return cfg, nil
}

func loadFile(path string) (LinesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LinesConfig{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := parseLines(data)
	if err != nil {
		return LinesConfig{}, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return cfg, nil
}

func parseLines(data []byte) (LinesConfig, error) {
	cfg := DefaultLinesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return LinesConfig{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

// UserPath joins elem under ~/.lines, or returns "" if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}
