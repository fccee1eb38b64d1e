package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endToEndRules = `[
	{"field":"tier","operator":"equals","value":"1","conjunction":"AND"},
	{"field":"createdAt","operator":"gte","value":"this_month","conjunction":"AND"}
]`

// runCLI puts the command first, as argparse requires, followed by an env
// file that does not exist and a fixed clock.
func runCLI(t *testing.T, stdin string, command string, args ...string) (string, error) {
	t.Helper()
	full := append([]string{
		"advfilter", command,
		"--env", filepath.Join(t.TempDir(), "missing.env"),
		"--now", "2024-05-15T10:30:00Z",
	}, args...)
	var out bytes.Buffer
	err := run(context.Background(), full, strings.NewReader(stdin), &out, io.Discard)
	return out.String(), err
}

func TestWhereCommand(t *testing.T) {
	t.Run("inline rules", func(t *testing.T) {
		out, err := runCLI(t, "", "where", "--rules", endToEndRules)
		require.NoError(t, err)
		assert.JSONEq(t, `{"AND":[{"tier":1},{"createdAt":{"gte":"2024-05-01T00:00:00Z"}}]}`, out)
	})
	t.Run("rules from stdin", func(t *testing.T) {
		out, err := runCLI(t, `[{"field":"owner.name","operator":"isNotNull"}]`, "where", "--rules", "-")
		require.NoError(t, err)
		assert.JSONEq(t, `{"owner":{"isNot":null,"name":{"not":null}}}`, out)
	})
	t.Run("rules from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.json")
		require.NoError(t, os.WriteFile(path, []byte(endToEndRules), 0o600))
		out, err := runCLI(t, "", "where", "--rules", "@"+path)
		require.NoError(t, err)
		assert.Contains(t, out, `"tier": 1`)
	})
	t.Run("malformed rules", func(t *testing.T) {
		out, err := runCLI(t, "", "where", "--rules", "[{")
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, out)
	})
	t.Run("not a number", func(t *testing.T) {
		_, err := runCLI(t, "", "where", "--rules", `[{"field":"price","operator":"lt","value":"cheap"}]`)
		assert.Error(t, err)
	})
	t.Run("entity check", func(t *testing.T) {
		_, err := runCLI(t, "", "where", "--entity", "deal", "--rules", `[{"field":"price","operator":"contains","value":"1"}]`)
		assert.ErrorContains(t, err, "does not apply")
	})
}

func TestApplyCommand(t *testing.T) {
	records := `[
		{"name":"Acme","tier":1,"createdAt":"2024-05-02"},
		{"name":"Globex","tier":1,"createdAt":"2024-04-02"},
		{"name":"Initech","tier":3,"createdAt":"2024-05-09"}
	]`

	out, err := runCLI(t, records, "apply", "--rules", endToEndRules)
	require.NoError(t, err)

	var result []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result, 1)
	assert.Equal(t, "Acme", result[0]["name"])

	_, err = runCLI(t, "not json", "apply", "--rules", endToEndRules)
	assert.ErrorContains(t, err, "decode records")

	_, err = runCLI(t, records, "apply", "--rules", "-")
	assert.ErrorContains(t, err, "both be read from stdin")

	t.Run("rules from stdin with a records file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "records.json")
		require.NoError(t, os.WriteFile(path, []byte(records), 0o600))
		out, err := runCLI(t, endToEndRules, "apply", "--records", path, "--rules", "-")
		require.NoError(t, err)
		var result []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result, 1)
		assert.Equal(t, "Acme", result[0]["name"])
	})
}

func TestListenAddressOnlyMattersToServe(t *testing.T) {
	t.Setenv(envAddr, "not an address")

	_, err := runCLI(t, "", "operators", "--type", "text")
	assert.NoError(t, err)

	_, err = runCLI(t, "", "where", "--rules", endToEndRules)
	assert.NoError(t, err)

	_, err = runCLI(t, "", "serve")
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestOperatorsCommand(t *testing.T) {
	out, err := runCLI(t, "", "operators", "--type", "date")
	require.NoError(t, err)
	assert.Contains(t, out, `"gte"`)
	assert.NotContains(t, out, `"contains"`)

	_, err = runCLI(t, "", "operators", "--type", "geo")
	assert.Error(t, err)
}

func TestCatalogFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entities:
  lead:
    - key: source
      label: Source
      type: text
`), 0o600))

	_, err := runCLI(t, "", "where", "--catalog", path, "--entity", "lead",
		"--rules", `[{"field":"source","operator":"contains","value":"web"}]`)
	assert.NoError(t, err)

	_, err = runCLI(t, "", "where", "--catalog", filepath.Join(t.TempDir(), "nope.yaml"), "--rules", "[]")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(envAddr, "")
		t.Setenv(envLogLevel, "")
		t.Setenv(envCatalog, "")
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, Config{Addr: defaultAddr, LogLevel: defaultLogLevel}, cfg)
		assert.NoError(t, cfg.Validate())
	})
	t.Run("env file", func(t *testing.T) {
		t.Setenv(envAddr, "")
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte(envLogLevel+"=debug\n"), 0o600))
		os.Unsetenv(envLogLevel)
		t.Cleanup(func() { os.Unsetenv(envLogLevel) })

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "DEBUG", cfg.Level().String())
	})
	t.Run("invalid values", func(t *testing.T) {
		t.Setenv(envAddr, "not an address")
		t.Setenv(envLogLevel, "loud")
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Error(t, cfg.Validate())
		assert.Error(t, cfg.ValidateListen())
	})
	t.Run("invalid address only", func(t *testing.T) {
		t.Setenv(envAddr, "not an address")
		t.Setenv(envLogLevel, "")
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate())
		assert.Error(t, cfg.ValidateListen())
	})
}
