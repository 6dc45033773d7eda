// Package stdref rebuilds the kernel derivation chain from the standard
// library's crypto/sha1 and crypto/rc4. Tests use it as an independent
// reference for the hand-written primitives.
package stdref

import (
	"crypto/rc4"
	"crypto/sha1"
	"encoding"
	"encoding/binary"
	"fmt"
	"hash"
)

// sha1 marshaled state: magic, 5 words, block buffer, length
const (
	stateMagic = "sha\x01"
	stateSize  = len(stateMagic) + 5*4 + sha1.BlockSize + 8
)

// Resume returns a crypto/sha1 hash whose chaining words are h and whose
// byte counter is length. length must be a multiple of sha1.BlockSize.
func Resume(h [5]uint32, length uint64) (hash.Hash, error) {
	if length%sha1.BlockSize != 0 {
		return nil, fmt.Errorf("length %d is not block aligned", length)
	}

	state := make([]byte, 0, stateSize)
	state = append(state, stateMagic...)
	for _, w := range h {
		state = binary.BigEndian.AppendUint32(state, w)
	}
	state = append(state, make([]byte, sha1.BlockSize)...)
	state = binary.BigEndian.AppendUint64(state, length)

	d := sha1.New()
	u, ok := d.(encoding.BinaryUnmarshaler)
	if !ok {
		return nil, fmt.Errorf("crypto/sha1 digest does not support state restore")
	}
	if err := u.UnmarshalBinary(state); err != nil {
		return nil, fmt.Errorf("restore sha1 state: %w", err)
	}
	return d, nil
}

// DoubleHash hashes the concatenated segments from step1 and then the
// result from step2, both resumed after one absorbed block.
func DoubleHash(step1, step2 [5]uint32, segments ...[]byte) ([]byte, error) {
	first, err := Resume(step1, sha1.BlockSize)
	if err != nil {
		return nil, err
	}
	for _, s := range segments {
		first.Write(s)
	}

	second, err := Resume(step2, sha1.BlockSize)
	if err != nil {
		return nil, err
	}
	second.Write(first.Sum(nil))
	return second.Sum(nil), nil
}

// RC4 XORs data with the crypto/rc4 keystream for key.
func RC4(key, data []byte) ([]byte, error) {
	c, err := rc4.NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out, nil
}
