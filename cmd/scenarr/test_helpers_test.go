package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"scenarr/internal/config"
	"scenarr/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, args, e.configPath)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

const sampleSiteJSON = `{
  "site": {
    "uuid": "3f1c8d7e-0000-4000-8000-000000000001",
    "name": "Classic Features",
    "url": "https://example.com",
    "rating": 4.5,
    "network": "Golden Age"
  },
  "scenes": [
    {"title": "Sunset Boulevard", "date": "2020-01-05", "duration": 95},
    {"title": "Double Indemnity"}
  ]
}`

const sampleSiteUUID = "3f1c8d7e-0000-4000-8000-000000000001"

func writeSampleSite(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "site.json")
	if err := os.WriteFile(path, []byte(sampleSiteJSON), 0o644); err != nil {
		t.Fatalf("write site document: %v", err)
	}
	return path
}
