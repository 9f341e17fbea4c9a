package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArrayFromProse(t *testing.T) {
	raws, err := ExtractJSONArray("Here:\n[{\"name\":\"Milk\",\"quantity\":2}]\nDone")

	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Milk", raws[0]["name"])
	assert.Equal(t, float64(2), raws[0]["quantity"])
}

func TestExtractJSONArrayMissingBrackets(t *testing.T) {
	for _, text := range []string{
		"keine Liste hier",
		"nur öffnend [ ohne Ende",
		"nur schließend ] ohne Anfang",
		"] verkehrt herum [",
	} {
		_, err := ExtractJSONArray(text)
		assert.ErrorIs(t, err, ErrMalformedModelOutput, text)
	}
}

func TestExtractJSONArrayUnparseableSubstring(t *testing.T) {
	_, err := ExtractJSONArray("[{not json at all]")
	assert.ErrorIs(t, err, ErrMalformedModelOutput)
}

func TestExtractJSONArrayEmpty(t *testing.T) {
	raws, err := ExtractJSONArray("Die Liste ist leer: []")

	require.NoError(t, err)
	assert.Empty(t, raws)
}
