package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, SourceCSV, cfg.Source.Type)
	assert.Equal(t, "Youtube-Spam-Dataset.csv", cfg.Source.Path)
	assert.Equal(t, Columns{User: "AUTHOR", Content: "CONTENT", Video: "VIDEO_NAME", Label: "CLASS"}, cfg.Source.Columns)
	assert.Equal(t, 0.7, cfg.Analysis.Threshold)
	assert.Equal(t, []float64{0.0, 0.2, 0.5, 0.9, 1.0}, cfg.Analysis.Sweep)
	assert.Equal(t, 4, cfg.Analysis.Parallelism)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NoError(t, cfg.Validate())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
source:
  path: data/comments.csv
  columns:
    user: author
analysis:
  threshold: 0
  sweep: [0.3, 0.6]
log_level: debug
`))
	require.NoError(t, err)

	assert.Equal(t, "data/comments.csv", cfg.Source.Path)
	assert.Equal(t, "author", cfg.Source.Columns.User)
	assert.Equal(t, "CONTENT", cfg.Source.Columns.Content)
	assert.Equal(t, 0.0, cfg.Analysis.Threshold)
	assert.Equal(t, []float64{0.3, 0.6}, cfg.Analysis.Sweep)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_PostgresDefaultsAndEnv(t *testing.T) {
	t.Setenv("PGHOST", "db.local")
	t.Setenv("PGDATABASE", "youtube")
	t.Setenv("PGUSER", "analyst")
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGPASSWORD", "")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("PGSSLMODE", "")

	cfg, err := Parse([]byte(`
source:
  type: postgres
connection:
  user: owner
`))
	require.NoError(t, err)

	assert.Equal(t, "comments", cfg.Source.Table)
	assert.Equal(t, "author", cfg.Source.Columns.User)
	assert.Equal(t, "class", cfg.Source.Columns.Label)
	assert.Equal(t, "db.local", cfg.Connection.Host)
	assert.Equal(t, 6543, cfg.Connection.Port)
	assert.Equal(t, "owner", cfg.Connection.User, "YAML wins over env")
	assert.Equal(t, "disable", cfg.Connection.SSLMode)
	assert.Equal(t,
		"host=db.local port=6543 dbname=youtube user=owner password= sslmode=disable",
		cfg.Connection.DSN())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "threshold above one",
			yaml: "analysis:\n  threshold: 1.5\n",
			want: "analysis.threshold must be lte 1",
		},
		{
			name: "negative sweep value",
			yaml: "analysis:\n  sweep: [0.1, -0.2]\n",
			want: "sweep",
		},
		{
			name: "unknown source type",
			yaml: "source:\n  type: parquet\n",
			want: "must be one of",
		},
		{
			name: "unknown log level",
			yaml: "log_level: loud\n",
			want: "log_level",
		},
		{
			name: "postgres without host",
			yaml: "source:\n  type: postgres\nconnection:\n  database: x\n  user: y\n",
			want: "connection.host is required",
		},
		{
			name: "malformed yaml",
			yaml: "source: [",
			want: "parsing config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, name := range []string{"PGHOST", "POSTGRES_HOST"} {
				t.Setenv(name, "")
			}
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: report.txt\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "report.txt", cfg.Output)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestSetSourceType(t *testing.T) {
	cfg := Default()
	cfg.SetSourceType(SourcePostgres)
	assert.Equal(t, SourcePostgres, cfg.Source.Type)
	assert.Equal(t, DefaultColumns(SourcePostgres), cfg.Source.Columns)
	assert.Equal(t, "comments", cfg.Source.Table)

	custom := Default()
	custom.Source.Columns.User = "name"
	custom.SetSourceType(SourcePostgres)
	assert.Equal(t, "name", custom.Source.Columns.User)
	assert.Equal(t, "CONTENT", custom.Source.Columns.Content)
}
