package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icon-registry/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfigFile(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	registryPath := filepath.Join(dir, "configs", "icon-registry.json")
	body := fmt.Sprintf(`
catalogue:
  index_url: http://127.0.0.1:1/icon-nodes.json
  icon_base_url: http://127.0.0.1:1/icons
  timeout: 200
dispatch:
  live_lookup: false
generator:
  output_dir: %s
  package_name: lucide
  file_name: icons_gen.go
  registry_path: %s
logging:
  level: error
`, filepath.Join(dir, "pkg", "lucide"), registryPath)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path, registryPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, verbose = "", false
	offline, saveSnapshot, outputDir, registryOut = false, true, "", ""
	validatePath = ""
	resolveLive, renderSVG = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// ==========================
// Command Tests
// ==========================

func TestGenerate_OfflineUsesBundledSet(t *testing.T) {
	cfgPath, registryPath := createTestConfigFile(t)

	out, err := runCLI(t, "generate", "--offline", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"origin": "fallback"`)
	assert.Contains(t, out, `"entries": 5`)

	reg, err := registry.LoadRegistry(registryPath)
	require.NoError(t, err)
	assert.Equal(t, 5, reg.Count())
}

func TestGenerate_UnreachableUpstreamFallsBack(t *testing.T) {
	cfgPath, _ := createTestConfigFile(t)

	out, err := runCLI(t, "generate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `"origin": "fallback"`)
}

func TestValidate(t *testing.T) {
	cfgPath, registryPath := createTestConfigFile(t)
	_, err := runCLI(t, "generate", "--offline", "--config", cfgPath)
	require.NoError(t, err)

	out, err := runCLI(t, "validate", "--path", registryPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Registry is valid")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"count":2,"entries":[{"raw_name":"a","identifier":"Dup","content":""},{"raw_name":"b","identifier":"Dup","content":""}]}`), 0o644))
	_, err = runCLI(t, "validate", "--path", bad)
	assert.ErrorContains(t, err, "REGISTRY_INVALID")

	schemaBad := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(schemaBad, []byte(`{"entries":[]}`), 0o644))
	_, err = runCLI(t, "validate", "--path", schemaBad)
	assert.ErrorContains(t, err, "does not match the registry schema")
}

func TestResolve(t *testing.T) {
	cfgPath, _ := createTestConfigFile(t)
	_, err := runCLI(t, "generate", "--offline", "--config", cfgPath)
	require.NoError(t, err)

	out, err := runCLI(t, "resolve", "home", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "tier:     registry")
	assert.Contains(t, out, "matched:  true")

	out, err = runCLI(t, "resolve", "nope", "--config", cfgPath, "--svg")
	require.NoError(t, err)
	assert.Contains(t, out, "tier:     placeholder")
	assert.Contains(t, out, `data-lucide="nope"`)
}

func TestResolve_RequiresName(t *testing.T) {
	_, err := runCLI(t, "resolve")
	assert.Error(t, err)
}
