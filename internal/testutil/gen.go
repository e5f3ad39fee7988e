// Package testutil generates arbitrary policy documents for round-trip
// testing. Generated instructions always respect the grammar's constraints:
// key segments are non-empty printable ASCII without backslashes, value names
// stay within the 259-character cap, and payload variants match their
// declared types.
package testutil

import (
	"math/rand"
	"strings"

	"github.com/joshuapare/pregkit/pkg/types"
)

// genTypes is the pool of types the generator draws from. String-list types
// share one representative since they share one payload rule.
var genTypes = []types.RegType{
	types.REG_SZ,
	types.REG_EXPAND_SZ,
	types.REG_LINK,
	types.REG_BINARY,
	types.REG_DWORD_LITTLE_ENDIAN,
	types.REG_DWORD_BIG_ENDIAN,
	types.REG_MULTI_SZ,
	types.REG_QWORD_LITTLE_ENDIAN,
	types.REG_QWORD_BIG_ENDIAN,
}

// RandomDocument returns a document with n generated instructions.
func RandomDocument(rng *rand.Rand, n int) *types.PolicyFile {
	ins := make([]types.Instruction, n)
	for i := range ins {
		ins[i] = RandomInstruction(rng)
	}
	return &types.PolicyFile{Body: &types.PolicyBody{Instructions: ins}}
}

// RandomInstruction returns one instruction with a grammar-conforming key
// path, value name, and a payload matching its type.
func RandomInstruction(rng *rand.Rand) types.Instruction {
	t := genTypes[rng.Intn(len(genTypes))]
	return types.Instruction{
		KeyPath:   RandomKeyPath(rng),
		ValueName: RandomValueName(rng),
		Type:      t,
		Data:      randomData(rng, t),
	}
}

// RandomKeyPath joins 1..4 random segments with backslashes.
func RandomKeyPath(rng *rand.Rand) string {
	segs := make([]string, 1+rng.Intn(4))
	for i := range segs {
		segs[i] = randomKeySegment(rng)
	}
	return strings.Join(segs, "\\")
}

// RandomValueName returns 1..99 printable-ASCII characters.
func RandomValueName(rng *rand.Rand) string {
	b := make([]byte, 1+rng.Intn(99))
	for i := range b {
		b[i] = 0x20 + byte(rng.Intn(0x5F)) // space..tilde
	}
	return string(b)
}

// randomKeySegment returns 1..99 printable-ASCII characters excluding '\'.
func randomKeySegment(rng *rand.Rand) string {
	b := make([]byte, 1+rng.Intn(99))
	for i := range b {
		c := 0x20 + byte(rng.Intn(0x5E)) // one short: skip over '\'
		if c >= '\\' {
			c++
		}
		b[i] = c
	}
	return string(b)
}

func randomData(rng *rand.Rand, t types.RegType) types.Value {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return types.StringValue(RandomValueName(rng))
	case types.REG_MULTI_SZ:
		ss := make([]string, 1+rng.Intn(5))
		for i := range ss {
			ss[i] = RandomValueName(rng)
		}
		return types.MultiStringValue(ss)
	case types.REG_BINARY:
		b := make([]byte, rng.Intn(64))
		rng.Read(b)
		return types.BinaryValue(b)
	case types.REG_DWORD_LITTLE_ENDIAN, types.REG_DWORD_BIG_ENDIAN:
		return types.DwordValue(rng.Uint32())
	default:
		return types.QwordValue(rng.Uint64())
	}
}
