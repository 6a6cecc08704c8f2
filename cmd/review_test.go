package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crossvet/crossvet/internal/models"
)

func TestLanguageFromExt(t *testing.T) {
	assert.Equal(t, "go", languageFromExt("main.go"))
	assert.Equal(t, "python", languageFromExt("script.PY"))
	assert.Equal(t, "typescript", languageFromExt("/some/path/app.ts"))
	assert.Equal(t, "", languageFromExt("Makefile"))
}

func TestReadArtifact_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snippet.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0644))

	content, err := readArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", content)
}

func TestReadArtifact_MissingFile(t *testing.T) {
	_, err := readArtifact("/nonexistent/file.go")
	assert.Error(t, err)
}

func TestIssueCounts(t *testing.T) {
	issues := []models.Issue{
		{Severity: models.SeverityCritical},
		{Severity: models.SeverityCritical},
		{Severity: models.SeverityMinor},
	}
	got := issueCounts(issues)
	assert.Contains(t, got, "2 critical")
	assert.Contains(t, got, "1 minor")
	assert.NotContains(t, got, "major")

	assert.Equal(t, "none", issueCounts(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "truncated…", truncate("truncated text here", 10))
}
