package config

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// envFileNames are read in order; earlier files win because a variable is
// only set when it is still empty.
var envFileNames = []string{".env.local", ".env"}

// loadEnvFiles applies env files found in the working directory and next
// to the executable.
func loadEnvFiles() {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(exe); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	loadEnvFilesFrom(dirs...)
}

func loadEnvFilesFrom(dirs ...string) {
	for _, dir := range dirs {
		for _, name := range envFileNames {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			applyEnvFile(data)
		}
	}
}

// applyEnvFile sets KEY=value pairs that are not already set. Blank lines,
// comments and an optional "export " prefix are accepted.
func applyEnvFile(data []byte) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
