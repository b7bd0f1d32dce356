package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePackageName(t *testing.T) {
	t.Parallel()

	valid := []string{"git", "python3.11", "g++", "build-essential", "libssl-dev"}
	for _, name := range valid {
		assert.NoError(t, ValidatePackageName(name), name)
	}

	invalid := []string{"", "  ", "git; rm -rf /", "$(whoami)", "-starts-with-dash", "a b"}
	for _, name := range invalid {
		assert.Error(t, ValidatePackageName(name), name)
	}
}

func TestValidateToolName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateToolName("pyenv"))
	assert.NoError(t, ValidateToolName("fc-list"))
	assert.Error(t, ValidateToolName("pyenv && curl evil"))
	assert.Error(t, ValidateToolName(""))
}

func TestValidateVersion(t *testing.T) {
	t.Parallel()

	valid := []string{"3.12.1", "22", "lts/*", "stable", "v20.11.0", "latest"}
	for _, v := range valid {
		assert.NoError(t, ValidateVersion(v), v)
	}

	invalid := []string{"", "3.12; true", "`id`", "$(ver)"}
	for _, v := range invalid {
		assert.Error(t, ValidateVersion(v), v)
	}
}

func TestValidateInstallerURL(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateInstallerURL("https://pyenv.run"))
	assert.NoError(t, ValidateInstallerURL("https://sh.rustup.rs"))

	invalid := []string{
		"",
		"http://pyenv.run",
		"ftp://example.com/install.sh",
		"https://example.com/install.sh; rm -rf /",
		"https://example.com/$(id)",
	}
	for _, url := range invalid {
		assert.Error(t, ValidateInstallerURL(url), url)
	}
}

func TestValidateFontName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateFontName("FiraCode"))
	assert.NoError(t, ValidateFontName("Source Code Pro"))
	assert.Error(t, ValidateFontName(""))
	assert.Error(t, ValidateFontName("Fira\"; curl evil"))
}

func TestValidateMarker(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateMarker("pyenv"))
	assert.NoError(t, ValidateMarker("shell-env"))
	assert.Error(t, ValidateMarker(""))
	assert.Error(t, ValidateMarker(">>> nested >>>"))
}
