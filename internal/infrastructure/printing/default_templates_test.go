package printing

import (
	"testing"

	"github.com/exos/backend/internal/domain/printing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultTemplates(t *testing.T) {
	templates := GetDefaultTemplates()
	require.Len(t, templates, 3)

	defaults := make(map[printing.DocType]int)
	for _, tmpl := range templates {
		assert.True(t, tmpl.DocType.IsValid(), tmpl.Name)
		assert.True(t, tmpl.PaperSize.IsValid(), tmpl.Name)
		assert.True(t, tmpl.Orientation.IsValid(), tmpl.Name)

		content, err := LoadTemplateContent(tmpl.FilePath)
		require.NoError(t, err, tmpl.FilePath)
		assert.Contains(t, content, "amountToWords", tmpl.FilePath)

		if tmpl.IsDefault {
			defaults[tmpl.DocType]++
		}
	}

	// exactly one default per document type
	for _, docType := range printing.AllDocTypes() {
		assert.Equal(t, 1, defaults[docType], docType.String())
	}
}

func TestLoadTemplateContent_Missing(t *testing.T) {
	_, err := LoadTemplateContent("templates/missing.html")
	assert.Error(t, err)
}

func TestResolveTemplate(t *testing.T) {
	t.Run("default layout", func(t *testing.T) {
		tmpl, err := ResolveTemplate(printing.DocTypeCheckRequest, "")
		require.NoError(t, err)
		assert.Equal(t, printing.PaperSizeLetter, tmpl.PaperSize)
		assert.NotEmpty(t, tmpl.Content)
	})

	t.Run("check paper layout", func(t *testing.T) {
		tmpl, err := ResolveTemplate(printing.DocTypeCheckRequest, printing.PaperSizeCheck)
		require.NoError(t, err)
		assert.Equal(t, printing.OrientationLandscape, tmpl.Orientation)
		assert.Equal(t, printing.CheckMargins(), tmpl.Margins)
	})

	t.Run("unsupported combination", func(t *testing.T) {
		_, err := ResolveTemplate(printing.DocTypeMemorandum, printing.PaperSizeCheck)
		assertRenderCode(t, err, ErrCodeInvalidPaperSize)
	})
}
