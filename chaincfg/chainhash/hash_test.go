package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashStringRoundTrip(t *testing.T) {
	h := HashH([]byte("open alice"))
	parsed, err := NewHashFromStr(h.String())
	require.NoError(t, err)
	require.True(t, h.IsEqual(parsed))
}

func TestHashBDeterministic(t *testing.T) {
	a := HashB([]byte("alice"))
	b := HashB([]byte("alice"))
	require.Equal(t, a, b)

	c := HashB([]byte("bob"))
	require.NotEqual(t, a, c)
}

func TestNewHashRejectsWrongSize(t *testing.T) {
	_, err := NewHash([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestDoubleHashMatchesTwoRounds(t *testing.T) {
	data := []byte("share-header")
	once := HashB(data)
	twice := HashB(once)
	require.Equal(t, twice, DoubleHashB(data))
}
