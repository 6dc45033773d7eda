package eeprom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moffa90/go-xboxhdd/firmware"
)

// ErrNotDecoded indicates decoded fields were requested before a
// successful decode.
var ErrNotDecoded = errors.New("eeprom: image not decoded")

// FormatError indicates the input is not a 256-byte EEPROM image.
type FormatError struct {
	Length int
}

func (e *FormatError) Error() string {
	if e.Length > ImageSize {
		return fmt.Sprintf("invalid eeprom image: got more than %d bytes", ImageSize)
	}
	return fmt.Sprintf("invalid eeprom image: got %d bytes, expected %d", e.Length, ImageSize)
}

// RecoveryError indicates that no kernel variant verified the stored hash.
type RecoveryError struct {
	Tried []firmware.Variant
}

func (e *RecoveryError) Error() string {
	names := make([]string, len(e.Tried))
	for i, v := range e.Tried {
		names[i] = v.String()
	}
	return fmt.Sprintf("eeprom recovery failed: stored hash did not verify under %s",
		strings.Join(names, ", "))
}

// IsFormatError returns true if err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsRecoveryError returns true if err is or wraps a *RecoveryError.
func IsRecoveryError(err error) bool {
	var re *RecoveryError
	return errors.As(err, &re)
}
