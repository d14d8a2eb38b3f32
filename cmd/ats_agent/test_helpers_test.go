package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResume = `{
  "personalInfo": {
    "fullName": "Jane Doe",
    "email": "jane.doe@example.com",
    "phone": "(555) 123-4567",
    "location": "Austin, TX",
    "linkedin": "linkedin.com/in/janedoe"
  },
  "experience": [{
    "company": "Acme",
    "position": "Senior Engineer",
    "startDate": "2020-01",
    "current": true,
    "description": [
      "Led migration of 12 services to Kubernetes, cutting deploy time by 40%",
      "Built a billing pipeline processing 2M events daily, raising revenue 15%"
    ]
  }],
  "education": [{"institution": "University of Texas", "degree": "BS"}],
  "skills": [{"name": "Go"}, {"name": "Kubernetes"}]
}`

const sampleJob = "Senior Go engineer.\r\n\r\n\r\nKubernetes and PostgreSQL experience required."

// writeFile writes content under a fresh temp dir and returns its path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// getBinaryPath returns the path to the ats_agent binary for CLI tests
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "ats_agent")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/ats_agent ./cmd/ats_agent'", binaryPath)
	}

	return binaryPath
}
