package digest

// HMAC pad bytes.
const (
	innerPad = 0x36
	outerPad = 0x5c
)

// HMAC returns HMAC-SHA1(key, segments...) with the segments hashed as
// one concatenated message. Keys longer than BlockSize are replaced by
// their SHA-1 digest first.
func HMAC(key []byte, segments ...[]byte) [Size]byte {
	if len(key) > BlockSize {
		k := Sum1(key)
		key = k[:]
	}

	var ipad, opad [BlockSize]byte
	copy(ipad[:], key)
	copy(opad[:], key)
	for i := range ipad {
		ipad[i] ^= innerPad
		opad[i] ^= outerPad
	}

	inner := New(Standard)
	inner.Write(ipad[:])
	for _, s := range segments {
		inner.Write(s)
	}
	in := inner.Digest()

	outer := New(Standard)
	outer.Write(opad[:])
	outer.Write(in[:])
	return outer.Digest()
}
