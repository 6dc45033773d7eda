package digest

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// Engine parameters.
const (
	// Size is the size of a digest in bytes
	Size = 20

	// BlockSize is the compression block size in bytes
	BlockSize = 64

	// lengthOffset is where the big-endian bit length starts in the final block
	lengthOffset = BlockSize - 8
)

// Round constants.
const (
	_K0 = 0x5A827999
	_K1 = 0x6ED9EBA1
	_K2 = 0x8F1BBCDC
	_K3 = 0xCA62C1D6
)

// ErrFinalized is the panic value when an Engine is finalized twice
// without an intervening Reset.
var ErrFinalized = errors.New("digest: engine already finalized, call Reset first")

// IV is the starting point of a hash computation.
type IV struct {
	// H holds the five chaining words
	H [5]uint32

	// Length is the number of message bytes already folded into H.
	// It is zero for plain SHA-1 and BlockSize for a midstate taken
	// after one absorbed pad block.
	Length uint64
}

// Standard is the FIPS 180 SHA-1 initial value.
var Standard = IV{
	H: [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0},
}

// Engine is an incremental SHA-1 computation seeded from an IV.
type Engine struct {
	iv   IV
	h    [5]uint32
	x    [BlockSize]byte
	nx   int
	len  uint64
	done bool
}

// New returns an Engine ready to absorb a message from iv.
func New(iv IV) *Engine {
	e := &Engine{iv: iv}
	e.Reset()
	return e
}

// Reset restores the initial value and discards any buffered input.
func (e *Engine) Reset() {
	e.h = e.iv.H
	e.x = [BlockSize]byte{}
	e.nx = 0
	e.len = e.iv.Length
	e.done = false
}

// Size returns the digest size in bytes.
func (e *Engine) Size() int { return Size }

// BlockSize returns the compression block size in bytes.
func (e *Engine) BlockSize() int { return BlockSize }

// Write absorbs p. It never returns an error.
func (e *Engine) Write(p []byte) (int, error) {
	if e.done {
		panic(ErrFinalized)
	}

	n := len(p)
	e.len += uint64(n)

	if e.nx > 0 {
		c := copy(e.x[e.nx:], p)
		e.nx += c
		if e.nx == BlockSize {
			block(&e.h, e.x[:])
			e.nx = 0
		}
		p = p[c:]
	}

	for len(p) >= BlockSize {
		block(&e.h, p[:BlockSize])
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		e.nx = copy(e.x[:], p)
	}

	return n, nil
}

// Sum finalizes the computation and appends the digest to b.
func (e *Engine) Sum(b []byte) []byte {
	d := e.Digest()
	return append(b, d[:]...)
}

// Digest finalizes the computation and returns the digest.
func (e *Engine) Digest() [Size]byte {
	if e.done {
		panic(ErrFinalized)
	}

	bitLen := e.len << 3

	// 0x80 then zeros up to 56 mod 64
	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	padLen := lengthOffset - int(e.len%BlockSize)
	if padLen <= 0 {
		padLen += BlockSize
	}
	binary.BigEndian.PutUint64(pad[padLen:], bitLen)
	e.Write(pad[:padLen+8])

	if e.nx != 0 {
		panic("digest: unaligned final block")
	}
	e.done = true

	var out [Size]byte
	for i, v := range e.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

// Sum1 returns the standard SHA-1 digest of data.
func Sum1(data []byte) [Size]byte {
	e := New(Standard)
	e.Write(data)
	return e.Digest()
}

// block runs the 80-round compression over one 64-byte block.
func block(h *[5]uint32, p []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, x := h[0], h[1], h[2], h[3], h[4]

	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f = b&c | (^b)&d
			k = _K0
		case i < 40:
			f = b ^ c ^ d
			k = _K1
		case i < 60:
			f = (b & c) | (b & d) | (c & d)
			k = _K2
		default:
			f = b ^ c ^ d
			k = _K3
		}
		t := bits.RotateLeft32(a, 5) + f + x + w[i] + k
		a, b, c, d, x = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += x
}
