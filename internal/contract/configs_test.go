package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/reviewlens/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Project:      "group/repo",
		BaseURL:      "https://gitlab.example.com/",
		Token:        "glpat-secret",
		Timeframe:    "30d",
		Reviewers:    "alice, bob,,carol",
		BatchSize:    5,
		BatchDelayMs: 100,
		TimeoutSecs:  60,
		Limit:        25,
		Precision:    1,
		Output:       "text",
		Color:        "yes",
		CacheBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "group/repo", cfg.Project)
	assert.Equal(t, "https://gitlab.example.com", cfg.BaseURL, "trailing slash should be stripped")
	assert.Equal(t, schema.Month, cfg.Timeframe)
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.ReviewerPool)
	assert.Equal(t, 100*time.Millisecond, cfg.BatchDelay)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"missing project", func(in *ConfigRawInput) { in.Project = " " }},
		{"missing base url", func(in *ConfigRawInput) { in.BaseURL = "" }},
		{"bad timeframe", func(in *ConfigRawInput) { in.Timeframe = "14d" }},
		{"zero batch size", func(in *ConfigRawInput) { in.BatchSize = 0 }},
		{"huge batch size", func(in *ConfigRawInput) { in.BatchSize = 50 }},
		{"negative delay", func(in *ConfigRawInput) { in.BatchDelayMs = -1 }},
		{"zero timeout", func(in *ConfigRawInput) { in.TimeoutSecs = 0 }},
		{"excessive limit", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 3 }},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"bad backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }},
		{"mysql without dsn", func(in *ConfigRawInput) { in.CacheBackend = "mysql" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/cache"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=cache user=me"))

	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost/cache"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "localhost:5432"))
}
