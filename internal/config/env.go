package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment keys that override the YAML file.
const (
	EnvLogLevel        = "FLOORSPIN_LOG_LEVEL"
	EnvOrientation     = "FLOORSPIN_ORIENTATION"
	EnvDisplayRotation = "FLOORSPIN_DISPLAY_ROTATION"
)

// LoadDotEnv reads path (e.g. ".env") and sets an environment variable for
// each KEY=VALUE line. Blank lines and # comments are skipped, surrounding
// quotes are stripped. A missing file is not an error. Variables already set
// in the environment win.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	return scanner.Err()
}

func parseEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// ApplyEnv overrides fields from the FLOORSPIN_* variables that lookup finds.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvOrientation); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOrientation, err)
		}
		c.Orientation.Enabled = b
	}
	if v, ok := lookup(EnvDisplayRotation); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDisplayRotation, err)
		}
		c.Orientation.DisplayRotation = n
	}
	return nil
}
