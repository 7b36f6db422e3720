package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashHDeterministic(t *testing.T) {
	h1 := HashH([]byte("leaf"))
	h2 := HashH([]byte("leaf"))
	require.Equal(t, h1, h2)

	h3 := HashH([]byte("other"))
	require.NotEqual(t, h1, h3)
}

func TestHashTextRoundTrip(t *testing.T) {
	h := HashH([]byte("round-trip"))

	text, err := h.MarshalText()
	require.NoError(t, err)

	var got Hash
	require.NoError(t, got.UnmarshalText(text))
	require.True(t, h.IsEqual(&got))
}

func TestNewHashFromBytesRejectsWrongLength(t *testing.T) {
	_, err := NewHashFromBytes([]byte{0x01, 0x02})
	require.Error(t, err)
}
