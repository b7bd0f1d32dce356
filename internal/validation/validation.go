// Package validation provides input validation utilities to prevent command
// injection and other input-based attacks before shelling out to installers.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput         = errors.New("input cannot be empty")
	ErrInvalidPackageName = errors.New("invalid package name")
	ErrInvalidToolName    = errors.New("invalid tool name")
	ErrInvalidVersion     = errors.New("invalid version string")
	ErrInvalidURL         = errors.New("invalid URL")
	ErrInvalidFontName    = errors.New("invalid font name")
	ErrInvalidMarker      = errors.New("invalid block marker")
)

// Compiled regex patterns for validation (compiled once for performance).
var (
	// packageNameRegex matches valid package names: alphanumeric, hyphens,
	// underscores, dots, plus. Examples: "git", "python3.11", "g++".
	packageNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// toolNameRegex matches bare executable names resolved on PATH.
	toolNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

	// versionRegex matches version strings. Examples: "3.12.1", "22", "lts/*",
	// "stable", "v20.11.0".
	versionRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9./*_-]*$`)

	// urlRegex matches HTTPS URLs for vendor installer scripts.
	urlRegex = regexp.MustCompile(`^https://[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

	// fontNameRegex matches font family names. Examples: "FiraCode",
	// "JetBrainsMono", "Source Code Pro".
	fontNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 ._-]*$`)

	// markerRegex matches config block marker names.
	markerRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
)

// ValidatePackageName validates an OS package name.
func ValidatePackageName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !packageNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidPackageName, name)
	}
	return nil
}

// ValidateToolName validates a bare executable name.
func ValidateToolName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !toolNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidToolName, name)
	}
	return nil
}

// ValidateVersion validates a version or channel string passed to an installer.
func ValidateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return ErrEmptyInput
	}
	if !versionRegex.MatchString(version) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	return nil
}

// ValidateInstallerURL validates a vendor installer script URL. Only HTTPS is
// accepted; installer scripts are piped into a shell.
func ValidateInstallerURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrEmptyInput
	}
	if !urlRegex.MatchString(url) {
		return fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return nil
}

// ValidateFontName validates a font family name.
func ValidateFontName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyInput
	}
	if !fontNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFontName, name)
	}
	return nil
}

// ValidateMarker validates a config block marker name.
func ValidateMarker(marker string) error {
	if strings.TrimSpace(marker) == "" {
		return ErrEmptyInput
	}
	if !markerRegex.MatchString(marker) {
		return fmt.Errorf("%w: %q", ErrInvalidMarker, marker)
	}
	return nil
}
