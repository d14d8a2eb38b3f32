package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"resumes": ["a.json", "b.json"],
		"job_url": "https://example.com/job",
		"label": "backend",
		"serializer": "text",
		"min_score": 70,
		"verbose": true
	}`

	cfg, err := LoadConfig(writeFile(t, "config.json", content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, []string{"a.json", "b.json"}, cfg.Resumes)
	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, "backend", cfg.Label)
	assert.Equal(t, "text", cfg.Serializer)
	assert.Equal(t, 70, cfg.MinScore)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "job: job.txt\nhistory_path: scores.db\nconcurrency: 8\nuse_browser: true\n"

	cfg, err := LoadConfig(writeFile(t, "config.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, "job.txt", cfg.Job)
	assert.Equal(t, "scores.db", cfg.HistoryPath)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, DefaultSerializer, cfg.Serializer)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ATS_LABEL", "from-env")
	t.Setenv("DATABASE_URL", "postgres://localhost/ats")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig(writeFile(t, "config.json", `{"label": "from-file", "port": 8000}`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Label)
	assert.Equal(t, "postgres://localhost/ats", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_PrefixedBeatsBareEnv(t *testing.T) {
	t.Setenv("ATS_DATABASE_URL", "postgres://prefixed/ats")
	t.Setenv("DATABASE_URL", "postgres://bare/ats")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://prefixed/ats", cfg.DatabaseURL)
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSerializer, cfg.Serializer)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.Resumes)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	jobFile := writeFile(t, "job.txt", "Go engineer")
	resumeFile := writeFile(t, "resume.json", "{}")

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{Job: jobFile, Resumes: []string{resumeFile}, Serializer: "text", MinScore: 80, Port: 8080}},
		{name: "mutually exclusive", cfg: Config{Job: jobFile, JobURL: "https://example.com/job"}, wantErr: "mutually exclusive"},
		{name: "negative concurrency", cfg: Config{Concurrency: -1}, wantErr: "concurrency"},
		{name: "min score too high", cfg: Config{MinScore: 101}, wantErr: "min_score"},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: "port"},
		{name: "unknown serializer", cfg: Config{Serializer: "yaml"}, wantErr: "serializer"},
		{name: "missing job file", cfg: Config{Job: "/nonexistent/job.txt"}, wantErr: "job file not found"},
		{name: "missing resume file", cfg: Config{Resumes: []string{"/nonexistent/r.json"}}, wantErr: "resume file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
