package presenter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	presenter := New()
	assert.NotNil(t, presenter)
	assert.Equal(t, os.Stdout, presenter.output)
	assert.Equal(t, os.Stderr, presenter.errorOutput)
	assert.False(t, presenter.quiet)
}

func TestNewWithOptions(t *testing.T) {
	var output, errorOutput bytes.Buffer
	presenter := NewWithOptions(&output, &errorOutput, ColorNever)

	assert.Equal(t, &output, presenter.output)
	assert.Equal(t, &errorOutput, presenter.errorOutput)
	assert.Equal(t, ColorNever, presenter.colorMode)
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name          string
		noColor       string
		mcpadminColor string
		expected      ColorMode
	}{
		{"NO_COLOR set", "1", "", ColorNever},
		{"MCPADMIN_COLOR always", "", "always", ColorAlways},
		{"MCPADMIN_COLOR force", "", "force", ColorAlways},
		{"MCPADMIN_COLOR never", "", "never", ColorNever},
		{"MCPADMIN_COLOR off", "", "off", ColorNever},
		{"MCPADMIN_COLOR auto", "", "auto", ColorAuto},
		{"default", "", "", ColorAuto},
		{"invalid mcpadmin color", "", "invalid", ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear environment
			os.Unsetenv("NO_COLOR")
			os.Unsetenv("MCPADMIN_COLOR")

			// Set test environment
			if tt.noColor != "" {
				os.Setenv("NO_COLOR", tt.noColor)
			}
			if tt.mcpadminColor != "" {
				os.Setenv("MCPADMIN_COLOR", tt.mcpadminColor)
			}

			result := detectColorMode()
			assert.Equal(t, tt.expected, result)

			// Cleanup
			os.Unsetenv("NO_COLOR")
			os.Unsetenv("MCPADMIN_COLOR")
		})
	}
}

func TestError(t *testing.T) {
	var errorOutput bytes.Buffer
	presenter := NewWithOptions(nil, &errorOutput, ColorNever)

	// Test with context
	err := errors.New("test error")
	presenter.Error(err, "test context")
	assert.Contains(t, errorOutput.String(), "[ERROR] test context: test error")

	// Test without context
	errorOutput.Reset()
	presenter.Error(err, "")
	assert.Contains(t, errorOutput.String(), "[ERROR] test error")

	// Nil error prints nothing
	errorOutput.Reset()
	presenter.Error(nil, "context")
	assert.Empty(t, errorOutput.String())
}

func TestSuccess(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Success("operation completed")
	assert.Contains(t, output.String(), "✓ operation completed")
}

func TestWarning(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Warning("be careful")
	assert.Contains(t, output.String(), "⚠ be careful")
}

func TestInfo(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Info("some information")
	assert.Equal(t, "some information\n", output.String())
}

func TestSection(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Section("My Section")
	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	assert.Equal(t, "My Section", lines[0])
	assert.Equal(t, strings.Repeat("-", len("My Section")), lines[1])
}

func TestSeparator(t *testing.T) {
	var output bytes.Buffer
	presenter := NewWithOptions(&output, nil, ColorNever)

	presenter.Separator()
	assert.Equal(t, strings.Repeat("-", 60)+"\n", output.String())
}

func TestQuietMode(t *testing.T) {
	var output, errorOutput bytes.Buffer
	presenter := NewWithOptions(&output, &errorOutput, ColorNever)

	presenter.SetQuiet(true)
	assert.True(t, presenter.IsQuiet())

	presenter.Success("hidden")
	presenter.Warning("hidden")
	presenter.Info("hidden")
	presenter.Section("hidden")
	presenter.Separator()
	assert.Empty(t, output.String())

	// Errors are never suppressed by quiet mode
	presenter.Error(errors.New("still shown"), "")
	assert.Contains(t, errorOutput.String(), "still shown")
}
