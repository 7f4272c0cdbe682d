package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAbsoluteImageURL_MissingFallsBackToPlaceholder(t *testing.T) {
	got := AbsoluteImageURL("https://anviboutique.in", "")
	assert.Equal(t, "https://placehold.co/600x600", got)
}

func TestAbsoluteImageURL_AbsolutePassesThrough(t *testing.T) {
	url := "https://cdn.anviboutique.in/saree.jpg"
	assert.Equal(t, url, AbsoluteImageURL("https://anviboutique.in", url))
}

func TestAbsoluteImageURL_RelativeJoinsBase(t *testing.T) {
	assert.Equal(t,
		"https://anviboutique.in/images/saree.jpg",
		AbsoluteImageURL("https://anviboutique.in", "/images/saree.jpg"))

	// One slash regardless of how the parts are written.
	assert.Equal(t,
		"https://anviboutique.in/images/saree.jpg",
		AbsoluteImageURL("https://anviboutique.in/", "images/saree.jpg"))
}

func TestMinorUnits_ShiftsTwoPlaces(t *testing.T) {
	assert.Equal(t, int64(149900), MinorUnits(decimal.RequireFromString("1499.00")))
	assert.Equal(t, int64(50), MinorUnits(decimal.RequireFromString("0.50")))
}

func TestMinorUnits_TruncatesSubMinorPrecision(t *testing.T) {
	// 199.995 -> 19999.5 paise -> truncated, not rounded.
	assert.Equal(t, int64(19999), MinorUnits(decimal.RequireFromString("199.995")))
}
