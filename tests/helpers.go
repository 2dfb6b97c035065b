package tests

import (
	"math/rand"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

// testContentID returns base32 CIDv1 of the raw data.
func testContentID(t testing.TB, data string) string {
	mh, err := multihash.Sum([]byte(data), multihash.SHA2_256, -1)
	require.NoError(t, err)
	return cid.NewCidV1(cid.Raw, mh).String()
}

func randomMultihash(t testing.TB) multihash.Multihash {
	mh, err := multihash.Sum(randomBytes(64), multihash.SHA2_256, -1)
	require.NoError(t, err)
	return mh
}
