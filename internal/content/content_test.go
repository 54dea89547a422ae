package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/content"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	store := content.NewStore()

	for _, slug := range []string{"about", "terms", "privacy"} {
		out, err := store.HTML(slug)
		require.NoError(t, err, slug)
		assert.Contains(t, out, "<h1", slug)
		assert.NotContains(t, out, "<script", slug)
	}

	about, err := store.HTML("about")
	require.NoError(t, err)
	assert.Contains(t, about, "À propos de Vroum-Auto")
	assert.Contains(t, about, "<strong>Transparence")
}

func TestHTMLUnknownPage(t *testing.T) {
	t.Parallel()

	store := content.NewStore()
	_, err := store.HTML("nope")
	assert.ErrorIs(t, err, content.ErrUnknownPage)
}

func TestHTMLCached(t *testing.T) {
	t.Parallel()

	store := content.NewStore()
	a, err := store.HTML("terms")
	require.NoError(t, err)
	b, err := store.HTML("terms")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
