// Package arcfour implements the RC4 stream cipher used to encrypt the
// Xbox EEPROM key block.
//
// RC4 is cryptographically broken. It is here only because the EEPROM
// format requires it.
package arcfour

import "strconv"

// Key length limits.
const (
	// MinKeySize is the shortest accepted key in bytes
	MinKeySize = 1

	// MaxKeySize is the longest accepted key in bytes
	MaxKeySize = 256
)

// KeySizeError reports a key length outside MinKeySize..MaxKeySize.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "arcfour: invalid key size " + strconv.Itoa(int(k))
}

// Cipher is an RC4 keystream. The cursors persist across calls, so
// independent streams need independent Ciphers.
type Cipher struct {
	s    [256]uint8
	i, j uint8
}

// NewCipher runs the key schedule for key.
func NewCipher(key []byte) (*Cipher, error) {
	k := len(key)
	if k < MinKeySize || k > MaxKeySize {
		return nil, KeySizeError(k)
	}

	c := &Cipher{}
	for i := 0; i < 256; i++ {
		c.s[i] = uint8(i)
	}

	var j uint8
	for i := 0; i < 256; i++ {
		j += c.s[i] + key[i%k]
		c.s[i], c.s[j] = c.s[j], c.s[i]
	}

	return c, nil
}

// XORKeyStream sets dst to src XOR the next len(src) keystream bytes.
// dst and src must overlap entirely or not at all.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]

	i, j := c.i, c.j
	for k, v := range src {
		i++
		x := c.s[i]
		j += x
		y := c.s[j]
		c.s[i], c.s[j] = y, x
		dst[k] = v ^ c.s[x+y]
	}
	c.i, c.j = i, j
}

// Apply encrypts or decrypts data under key with a fresh Cipher.
func Apply(key, data []byte) ([]byte, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	c.XORKeyStream(out, data)
	return out, nil
}
