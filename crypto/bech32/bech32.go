// Package bech32 adapts the btcutil bech32 implementation to raw byte
// payloads, converting between the 8-bit and the 5-bit word form on
// the way.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/custodia-one/custodia/errors"
)

// Decode parses a bech32 string into the human readable part and the
// raw payload bytes.
func Decode(raw string) (string, []byte, error) {
	hrp, words, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrap(err, "bech32 decode")
	}
	payload, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(err, "convert bits")
	}
	return hrp, payload, nil
}

// Encode renders the payload as a bech32 string under the given human
// readable part.
func Encode(hrp string, payload []byte) ([]byte, error) {
	words, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return nil, errors.Wrap(err, "convert bits")
	}
	raw, err := bech32.Encode(hrp, words)
	if err != nil {
		return nil, errors.Wrap(err, "bech32 encode")
	}
	return []byte(raw), nil
}
