package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
)

var envKeys = []string{
	"HTTP_PORT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"INPUT_CSV_PATH", "INPUT_RATER_COLUMN", "INPUT_RATEE_COLUMN",
	"OUTPUT_SQL_PATH", "OUTPUT_JSON_PATH",
	"SQL_DIALECT", "SQL_QUOTING", "JSON_PERIOD_ID",
	"LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ratingimport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Employee_Rating_Guide_Managers.csv", cfg.Input.Path)
	assert.Equal(t, "Rater Email", cfg.Input.RaterColumn)
	assert.Equal(t, "Ratee Email ", cfg.Input.RateeColumn)
	assert.Equal(t, domain.Outputs{
		SQLPath:  "database/import-assignments.sql",
		JSONPath: "database/assignments.json",
	}, cfg.Outputs())

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, domain.RenderOptions{
		Dialect:  domain.DialectMSSQL,
		Quoting:  domain.QuotingEscape,
		PeriodID: 1,
	}, opts)
	assert.Equal(t, "8080", cfg.HTTP.Port)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
input:
  path: exports/guide.csv
  ratee_column: "Manager Email"
output:
  sql_path: out/import.sql
sql:
  dialect: sqlite
  quoting: raw
json:
  period_id: 4
http:
  read_timeout: 15s
`)
	t.Setenv("SQL_DIALECT", "postgres")
	t.Setenv("JSON_PERIOD_ID", "9")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "exports/guide.csv", cfg.Input.Path)
	assert.Equal(t, "Manager Email", cfg.Input.RateeColumn)
	assert.Equal(t, "Rater Email", cfg.Input.RaterColumn)
	assert.Equal(t, "out/import.sql", cfg.Output.SQLPath)
	assert.Equal(t, "database/assignments.json", cfg.Output.JSONPath)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, domain.DialectPostgres, opts.Dialect)
	assert.Equal(t, domain.QuotingRaw, opts.Quoting)
	assert.Equal(t, 9, opts.PeriodID)
}

func TestLoad_BadEnvNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JSON_PERIOD_ID", "abc")
	t.Setenv("HTTP_IDLE_TIMEOUT", "forever")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.JSON.PeriodID)
	assert.Equal(t, 60*time.Second, cfg.HTTP.IdleTimeout)
}

func TestLoad_UnknownDialect(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQL_DIALECT", "oracle")

	_, err := Load("")
	assert.ErrorIs(t, err, domain.ErrUnknownDialect)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BrokenYAML(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeYAML(t, "sql: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
