// Package drive derives the ATA security password of an Xbox hard drive
// from the EEPROM drive key and the drive's identify strings.
//
//	pw := drive.Password(dec.DriveKey(), "ST310014ACE", "5JV0ABC1")
//	fmt.Println(drive.Hex(drive.Format(pw, drive.Width32)))
package drive

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/moffa90/go-xboxhdd/digest"
)

// Width is the length a password is presented at.
type Width int

// Supported presentation widths.
const (
	// Width20 is the raw HMAC-SHA1 output
	Width20 Width = 20

	// Width32 is the ATA password field length, zero padded
	Width32 Width = 32
)

// ParseWidth converts a byte count into a Width.
func ParseWidth(n int) (Width, error) {
	switch Width(n) {
	case Width20, Width32:
		return Width(n), nil
	default:
		return 0, fmt.Errorf("unsupported password width %d (must be 20 or 32)", n)
	}
}

// Password returns HMAC-SHA1(driveKey, model || serial). The strings are
// taken as their UTF-8 bytes with no separator.
func Password(driveKey []byte, model, serial string) [digest.Size]byte {
	return digest.HMAC(driveKey, []byte(model), []byte(serial))
}

// Format returns pw at width w, zero padded when w is Width32.
func Format(pw [digest.Size]byte, w Width) []byte {
	n := int(w)
	if n < digest.Size {
		n = digest.Size
	}
	out := make([]byte, n)
	copy(out, pw[:])
	return out
}

// Hex renders b as uppercase hexadecimal.
func Hex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
