package eeprom

import (
	"crypto/hmac"
	"encoding/binary"
	"fmt"

	"github.com/moffa90/go-xboxhdd/arcfour"
	"github.com/moffa90/go-xboxhdd/firmware"
)

// State is the lifecycle state of a Codec.
type State int

// Codec states. Decoded and Failed are terminal.
const (
	StateUnattempted State = iota
	StateDecoded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnattempted:
		return "unattempted"
	case StateDecoded:
		return "decoded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Codec runs the kernel variant search for a single image.
//
// Codec is not safe for concurrent use.
type Codec struct {
	image  *Image
	config Config

	state  State
	result *Decoded
	err    error
}

// New creates a Codec for img with the given options.
//
// Example:
//
//	img, _ := eeprom.Parse("eeprom.bin")
//	codec := eeprom.New(img, eeprom.WithLogger(myLogger))
func New(img *Image, opts ...Option) *Codec {
	if img == nil {
		panic("image cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Codec{
		image:  img,
		config: cfg,
	}
}

// Decode parses b as an EEPROM image and decodes it.
//
// Example:
//
//	raw, _ := os.ReadFile("eeprom.bin")
//	dec, err := eeprom.Decode(raw)
func Decode(b []byte, opts ...Option) (*Decoded, error) {
	img, err := ParseBytes(b)
	if err != nil {
		return nil, err
	}

	return New(img, opts...).Decode()
}

// State returns the current lifecycle state.
func (c *Codec) State() State {
	return c.state
}

// Result returns the decoded image, or ErrNotDecoded unless a previous
// Decode succeeded.
func (c *Codec) Result() (*Decoded, error) {
	if c.state != StateDecoded {
		return nil, ErrNotDecoded
	}
	return c.result, nil
}

// Decode tries each configured kernel variant until one verifies the
// stored hash. Once the codec reaches a terminal state, later calls
// return the same outcome without repeating the search.
func (c *Codec) Decode() (*Decoded, error) {
	switch c.state {
	case StateDecoded:
		return c.result, nil
	case StateFailed:
		return nil, c.err
	}

	stored := c.image.StoredHash()
	ciphertext := c.image.protectedBlock()
	total := len(c.config.Variants)

	for i, v := range c.config.Variants {
		plain, matched, err := tryVariant(v, stored[:], ciphertext)
		if err != nil {
			c.logError("variant trial failed", "variant", v.String(), "error", err)
			return nil, fmt.Errorf("variant %s: %w", v, err)
		}

		c.logDebug("variant tried",
			"index", i,
			"variant", v.String(),
			"matched", matched,
		)

		c.reportAttempt(Attempt{
			Variant: v,
			Index:   i,
			Total:   total,
			Matched: matched,
		})

		if matched {
			c.result = &Decoded{
				variant: v,
				block:   plain,
				valid:   true,
			}
			c.state = StateDecoded

			c.logInfo("eeprom decoded",
				"variant", v.String(),
				"region", c.result.RegionName(),
				"attempts", i+1,
			)

			return c.result, nil
		}
	}

	c.err = &RecoveryError{Tried: append([]firmware.Variant(nil), c.config.Variants...)}
	c.state = StateFailed

	c.logError("eeprom recovery failed", "attempts", total)

	return nil, c.err
}

// tryVariant decrypts the protected block under v and checks the result
// against the stored hash.
func tryVariant(v firmware.Variant, stored, ciphertext []byte) ([BlockSize]byte, bool, error) {
	var plain [BlockSize]byte

	key := firmware.Derive(v, stored)
	c, err := arcfour.NewCipher(key[:])
	if err != nil {
		return plain, false, err
	}
	c.XORKeyStream(plain[:], ciphertext)

	confirm := firmware.Derive(v,
		plain[:ConfounderSize],
		plain[ConfounderSize:],
	)

	return plain, hmac.Equal(confirm[:], stored), nil
}

// reportAttempt calls the attempt callback if configured.
func (c *Codec) reportAttempt(a Attempt) {
	if c.config.AttemptCallback != nil {
		c.config.AttemptCallback(a)
	}
}

// logDebug logs a debug message if a logger is configured.
func (c *Codec) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Codec) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Codec) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}

// Decoded is the verified plaintext of an EEPROM image. Only Decode
// produces a usable Decoded; accessors on any other value panic with
// ErrNotDecoded.
type Decoded struct {
	variant firmware.Variant
	block   [BlockSize]byte
	valid   bool
}

func (d *Decoded) mustBeValid() {
	if d == nil || !d.valid {
		panic(ErrNotDecoded)
	}
}

// Variant returns the kernel variant that verified the image.
func (d *Decoded) Variant() firmware.Variant {
	d.mustBeValid()
	return d.variant
}

// FirmwareLabel returns the human-readable kernel label.
func (d *Decoded) FirmwareLabel() string {
	d.mustBeValid()
	return d.variant.String()
}

// Confounder returns the decrypted confounder.
func (d *Decoded) Confounder() []byte {
	d.mustBeValid()
	out := make([]byte, ConfounderSize)
	copy(out, d.block[:ConfounderSize])
	return out
}

// DriveKey returns the 16-byte hard-drive key.
func (d *Decoded) DriveKey() []byte {
	d.mustBeValid()
	out := make([]byte, DriveKeySize)
	copy(out, d.block[ConfounderSize:ConfounderSize+DriveKeySize])
	return out
}

// Region returns the decrypted region code.
func (d *Decoded) Region() Region {
	d.mustBeValid()
	return Region(binary.LittleEndian.Uint32(d.block[ConfounderSize+DriveKeySize:]))
}

// RegionName returns the region name, or "Unknown" for unlisted codes.
func (d *Decoded) RegionName() string {
	return d.Region().String()
}
