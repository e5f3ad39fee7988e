package preg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pregkit/internal/testutil"
	"github.com/joshuapare/pregkit/pkg/types"
)

// Round-trip law: parse(serialize(doc)) == doc for any grammar-conforming
// document, including the empty one.
func TestRoundTripGenerated(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5052_6567)) // "PReg"

	for _, n := range []int{0, 1, 2, 5, 20} {
		for iter := 0; iter < 25; iter++ {
			doc := testutil.RandomDocument(rng, n)

			img, err := WriteBytes(doc)
			require.NoError(t, err)

			got, err := ParseBytes(img)
			require.NoError(t, err)
			require.True(t, got.Equal(doc), "n=%d iter=%d", n, iter)
		}
	}
}

// Serializing a parsed document must reproduce the bytes exactly.
func TestRoundTripByteIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	doc := testutil.RandomDocument(rng, 10)

	img, err := WriteBytes(doc)
	require.NoError(t, err)

	parsed, err := ParseBytes(img)
	require.NoError(t, err)

	again, err := WriteBytes(parsed)
	require.NoError(t, err)
	require.Equal(t, img, again)
}

func TestRoundTripEveryType(t *testing.T) {
	doc := &types.PolicyFile{Body: &types.PolicyBody{Instructions: []types.Instruction{
		{KeyPath: "K", ValueName: "sz", Type: types.REG_SZ, Data: types.StringValue("s")},
		{KeyPath: "K", ValueName: "expand", Type: types.REG_EXPAND_SZ, Data: types.StringValue("%PATH%")},
		{KeyPath: "K", ValueName: "bin", Type: types.REG_BINARY, Data: types.BinaryValue([]byte{0, 1, 2})},
		{KeyPath: "K", ValueName: "dw", Type: types.REG_DWORD, Data: types.DwordValue(7)},
		{KeyPath: "K", ValueName: "dwbe", Type: types.REG_DWORD_BIG_ENDIAN, Data: types.DwordValue(7)},
		{KeyPath: "K", ValueName: "link", Type: types.REG_LINK, Data: types.StringValue("t")},
		{KeyPath: "K", ValueName: "multi", Type: types.REG_MULTI_SZ, Data: types.MultiStringValue([]string{"x", "y"})},
		{KeyPath: "K", ValueName: "res", Type: types.REG_RESOURCE_LIST, Data: types.MultiStringValue([]string{"r"})},
		{KeyPath: "K", ValueName: "frd", Type: types.REG_FULL_RESOURCE_DESCRIPTOR, Data: types.MultiStringValue([]string{"f"})},
		{KeyPath: "K", ValueName: "rrl", Type: types.REG_RESOURCE_REQUIREMENTS_LIST, Data: types.MultiStringValue([]string{"q"})},
		{KeyPath: "K", ValueName: "qw", Type: types.REG_QWORD, Data: types.QwordValue(1 << 63)},
		{KeyPath: "K", ValueName: "qwbe", Type: types.REG_QWORD_BIG_ENDIAN, Data: types.QwordValue(1 << 63)},
	}}}

	img, err := WriteBytes(doc)
	require.NoError(t, err)

	got, err := ParseBytes(img)
	require.NoError(t, err)
	require.True(t, got.Equal(doc))
}

// An empty binary payload and an empty string payload are both legal and
// survive the trip.
func TestRoundTripEmptyPayloads(t *testing.T) {
	doc := &types.PolicyFile{Body: &types.PolicyBody{Instructions: []types.Instruction{
		{KeyPath: "K", ValueName: "empty-bin", Type: types.REG_BINARY, Data: types.BinaryValue([]byte{})},
		{KeyPath: "K", ValueName: "empty-sz", Type: types.REG_SZ, Data: types.StringValue("")},
	}}}

	img, err := WriteBytes(doc)
	require.NoError(t, err)

	got, err := ParseBytes(img)
	require.NoError(t, err)
	require.True(t, got.Equal(doc))
}
