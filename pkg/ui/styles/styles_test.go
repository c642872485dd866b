package styles_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/recule556688/obsidian-dotfiles/pkg/ui/styles"
	"github.com/stretchr/testify/assert"
)

func init() {
	// Load the shipped styles.yaml explicitly so the tests exercise the
	// same file the embed directive captures
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("failed to get runtime caller info")
	}

	stylesPath := filepath.Join(filepath.Dir(filename), "styles.yaml")
	if err := styles.LoadStyles(stylesPath); err != nil {
		panic("failed to load styles for tests: " + err.Error())
	}
}

func TestStyleRegistry(t *testing.T) {
	expectedStyles := []string{
		// Headers
		"Header", "SubHeader",
		// Status styles
		"Success", "Error", "Warning", "Info", "Ignored",
		// Badge styles
		"SuccessBadge", "ErrorBadge", "WarningBadge",
		// Text formatting
		"Bold", "Italic", "Underline", "Muted", "MutedItalic",
		// Content types
		"VaultName", "FilePath", "Bucket", "Timestamp",
		// Special
		"DryRunBanner", "NoContent",
	}

	for _, styleName := range expectedStyles {
		t.Run(styleName, func(t *testing.T) {
			style, exists := styles.StyleRegistry[styleName]
			assert.True(t, exists, "Style %s should exist in registry", styleName)
			assert.NotNil(t, style, "Style %s should not be nil", styleName)
		})
	}

	assert.GreaterOrEqual(t, len(styles.StyleRegistry), len(expectedStyles),
		"StyleRegistry should contain at least %d styles", len(expectedStyles))
}

func TestGetStyle(t *testing.T) {
	tests := []struct {
		name        string
		styleName   string
		shouldExist bool
	}{
		{
			name:        "existing style Success",
			styleName:   "Success",
			shouldExist: true,
		},
		{
			name:        "existing style VaultName",
			styleName:   "VaultName",
			shouldExist: true,
		},
		{
			name:        "non-existent style",
			styleName:   "NonExistentStyle",
			shouldExist: false,
		},
		{
			name:        "empty string style name",
			styleName:   "",
			shouldExist: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := styles.GetStyle(tt.styleName)
			assert.NotNil(t, style, "GetStyle should never return nil")

			if tt.shouldExist {
				registryStyle, exists := styles.StyleRegistry[tt.styleName]
				assert.True(t, exists, "Style should exist in registry")
				assert.Equal(t, registryStyle, style, "Should return registry style")
			} else {
				assert.Equal(t, lipgloss.NewStyle(), style, "Should return default style")
			}

			rendered := style.Render("test content")
			assert.NotEmpty(t, rendered, "Style should render content")
		})
	}
}

func TestMergeStyles(t *testing.T) {
	tests := []struct {
		name   string
		styles []string
	}{
		{
			name:   "single style",
			styles: []string{"Bold"},
		},
		{
			name:   "multiple compatible styles",
			styles: []string{"Bold", "Underline"},
		},
		{
			name:   "styles with color and formatting",
			styles: []string{"Success", "Bold"},
		},
		{
			name:   "with non-existent style",
			styles: []string{"Bold", "NonExistent", "Italic"},
		},
		{
			name:   "empty list",
			styles: []string{},
		},
		{
			name:   "duplicate styles",
			styles: []string{"Bold", "Bold", "Italic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := styles.MergeStyles(tt.styles...)
			assert.NotNil(t, merged, "MergeStyles should never return nil")

			result := merged.Render("test content")
			assert.NotEmpty(t, result, "Merged style should render content")
		})
	}
}

func TestYAMLConfiguration(t *testing.T) {
	assert.NotNil(t, styles.StyleRegistry, "StyleRegistry should be initialized")
	assert.NotEmpty(t, styles.StyleRegistry, "StyleRegistry should contain entries")

	t.Run("verify style properties loaded", func(t *testing.T) {
		successStyle := styles.GetStyle("Success")
		errorStyle := styles.GetStyle("Error")

		assert.NotEqual(t, lipgloss.NewStyle(), successStyle,
			"Success should not be default style")
		assert.NotEqual(t, lipgloss.NewStyle(), errorStyle,
			"Error should not be default style")
	})

	t.Run("loading bad data keeps an error", func(t *testing.T) {
		err := styles.LoadStylesFromData([]byte("styles: ["))
		assert.Error(t, err)

		// Restore the registry for any tests running after this one
		_, filename, _, ok := runtime.Caller(0)
		assert.True(t, ok)
		stylesPath := filepath.Join(filepath.Dir(filename), "styles.yaml")
		assert.NoError(t, styles.LoadStyles(stylesPath))
	})
}

func TestStyleProperties(t *testing.T) {
	tests := []struct {
		name           string
		styleName      string
		expectedBold   bool
		expectedItalic bool
	}{
		{
			name:         "Header style is bold",
			styleName:    "Header",
			expectedBold: true,
		},
		{
			name:           "Ignored style is italic",
			styleName:      "Ignored",
			expectedItalic: true,
		},
		{
			name:         "Bold style is bold",
			styleName:    "Bold",
			expectedBold: true,
		},
		{
			name:           "MutedItalic style is italic",
			styleName:      "MutedItalic",
			expectedItalic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := styles.GetStyle(tt.styleName)
			if tt.expectedBold {
				assert.True(t, style.GetBold(), "%s should be bold", tt.styleName)
			}
			if tt.expectedItalic {
				assert.True(t, style.GetItalic(), "%s should be italic", tt.styleName)
			}
		})
	}
}
