package eeprom

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"

	"github.com/moffa90/go-xboxhdd/arcfour"
	"github.com/moffa90/go-xboxhdd/firmware"
)

// Plaintext is the content of the protected block before encryption.
type Plaintext struct {
	Confounder [ConfounderSize]byte
	DriveKey   [DriveKeySize]byte
	Region     Region
}

// Seal encrypts p the way kernel v does and writes the protected block
// into a copy of base. All other bytes of base are kept. A nil base
// seals into an otherwise zero image.
//
// Example:
//
//	img, err := eeprom.Seal(firmware.RetailLast, eeprom.Plaintext{
//	    DriveKey: key,
//	    Region:   eeprom.RegionEurope,
//	}, nil)
func Seal(v firmware.Variant, p Plaintext, base *Image) (*Image, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("invalid kernel variant %d", int(v))
	}

	var layout Layout
	if base != nil {
		layout = base.layout
	}

	var plain [BlockSize]byte
	copy(plain[:ConfounderSize], p.Confounder[:])
	copy(plain[ConfounderSize:], p.DriveKey[:])
	binary.LittleEndian.PutUint32(plain[ConfounderSize+DriveKeySize:], uint32(p.Region))

	layout.StoredHash = firmware.Derive(v, plain[:ConfounderSize], plain[ConfounderSize:])

	key := firmware.Derive(v, layout.StoredHash[:])
	c, err := arcfour.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	var sealed [BlockSize]byte
	c.XORKeyStream(sealed[:], plain[:])

	copy(layout.Confounder[:], sealed[:ConfounderSize])
	copy(layout.DriveKey[:], sealed[ConfounderSize:ConfounderSize+DriveKeySize])
	copy(layout.Region[:], sealed[ConfounderSize+DriveKeySize:])

	raw, err := restruct.Pack(binary.LittleEndian, &layout)
	if err != nil {
		return nil, fmt.Errorf("failed to pack layout: %w", err)
	}

	return ParseBytes(raw)
}
