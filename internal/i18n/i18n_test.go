package i18n_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/i18n"
)

func TestT(t *testing.T) {
	t.Parallel()

	b, err := i18n.New()
	require.NoError(t, err)
	assert.Contains(t, b.Languages(), "fr")
	assert.Contains(t, b.Languages(), "en")

	assert.Equal(t, "Accueil", b.T("fr", "nav.home"))
	assert.Equal(t, "Home", b.T("en", "nav.home"))

	// Nested keys flatten with dots.
	assert.Equal(t, "En attente", b.T("fr", "status.pending"))

	// Placeholder substitution.
	assert.Equal(t, "Vous ne pouvez comparer que 4 véhicules à la fois.",
		b.T("fr", "msg.compare_full", "max", "4"))
}

func TestTFallback(t *testing.T) {
	t.Parallel()

	b, err := i18n.New()
	require.NoError(t, err)

	// Key missing from the English catalog falls back to French.
	assert.Equal(t, "Vos favoris ont été mis à jour.", b.T("en", "msg.favorite_toggled"))

	// Unknown language falls back to French.
	assert.Equal(t, "Accueil", b.T("de", "nav.home"))

	// Unknown key comes back verbatim.
	assert.Equal(t, "nope.nothing", b.T("fr", "nope.nothing"))
}

func TestPrice(t *testing.T) {
	t.Parallel()

	out := i18n.Price("fr", 15999)
	assert.True(t, strings.HasSuffix(out, "€"), out)
	assert.Contains(t, out, "15")
	assert.Contains(t, out, "999")
	assert.NotContains(t, out, "15999", "digits must be grouped")

	rate := i18n.DailyRate("fr", 49)
	assert.Contains(t, rate, "49")
	assert.True(t, strings.HasSuffix(rate, "/jour"), rate)

	assert.True(t, strings.HasSuffix(i18n.DailyRate("en", 49), "/day"))
}

func TestMileage(t *testing.T) {
	t.Parallel()

	out := i18n.Mileage("fr", 45000)
	assert.True(t, strings.HasSuffix(out, "km"), out)
	assert.NotContains(t, out, "45000")
}

func TestDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 septembre 2026", i18n.Date("fr", "2026-09-01"))
	assert.Equal(t, "September 1, 2026", i18n.Date("en", "2026-09-01"))
	assert.Equal(t, "14 février 2026", i18n.Date("fr", "2026-02-14T10:00:00Z"))
	assert.Equal(t, "pas-une-date", i18n.Date("fr", "pas-une-date"))
}
