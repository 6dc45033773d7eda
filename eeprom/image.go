package eeprom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/go-restruct/restruct"

	"github.com/moffa90/go-xboxhdd/digest"
)

// Constants for the EEPROM image format.
const (
	// ImageSize is the exact size of an EEPROM image in bytes
	ImageSize = 256

	// HashOffset is the offset of the stored integrity hash
	HashOffset = 0x00

	// ConfounderOffset is the offset of the encrypted confounder
	ConfounderOffset = 0x14

	// DriveKeyOffset is the offset of the encrypted drive key
	DriveKeyOffset = 0x1C

	// RegionOffset is the offset of the encrypted region code
	RegionOffset = 0x2C

	// ProtectedEnd is the end of the encrypted block
	ProtectedEnd = 0x30

	// ConfounderSize is the confounder length in bytes
	ConfounderSize = 8

	// DriveKeySize is the drive key length in bytes
	DriveKeySize = 16

	// RegionSize is the region code length in bytes
	RegionSize = 4

	// BlockSize is the length of the encrypted confounder+key+region block
	BlockSize = ProtectedEnd - ConfounderOffset
)

// Layout is the field-by-field view of an EEPROM image.
type Layout struct {
	StoredHash [digest.Size]byte
	Confounder [ConfounderSize]byte
	DriveKey   [DriveKeySize]byte
	Region     [RegionSize]byte

	// factory section, plaintext
	Checksum2     [4]byte
	SerialNumber  [12]byte
	MACAddress    [6]byte
	Reserved2     [2]byte
	OnlineKey     [16]byte
	VideoStandard uint32
	Reserved3     [4]byte

	// user settings, including their own checksum
	UserSection [160]byte
}

// Image is a loaded EEPROM image. It is never modified after loading.
type Image struct {
	raw    [ImageSize]byte
	layout Layout
}

// Parse reads an EEPROM image from the given file path.
//
// Example:
//
//	img, err := eeprom.Parse("eeprom.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader reads an EEPROM image from r. It reads at most one byte
// past ImageSize, which is enough to reject oversized input.
func ParseReader(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, ImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return ParseBytes(data)
}

// ParseBytes copies b into a new Image. b must be exactly ImageSize bytes.
func ParseBytes(b []byte) (*Image, error) {
	if len(b) != ImageSize {
		return nil, &FormatError{Length: len(b)}
	}

	img := &Image{}
	copy(img.raw[:], b)

	if err := restruct.Unpack(img.raw[:], binary.LittleEndian, &img.layout); err != nil {
		return nil, fmt.Errorf("failed to unpack layout: %w", err)
	}

	return img, nil
}

// Bytes returns a copy of the raw image.
func (img *Image) Bytes() []byte {
	out := make([]byte, ImageSize)
	copy(out, img.raw[:])
	return out
}

// Layout returns a copy of the unpacked fields.
func (img *Image) Layout() Layout {
	return img.layout
}

// StoredHash returns the integrity hash at the start of the image.
func (img *Image) StoredHash() [digest.Size]byte {
	return img.layout.StoredHash
}

// protectedBlock returns the encrypted confounder+key+region bytes.
func (img *Image) protectedBlock() []byte {
	return img.raw[ConfounderOffset:ProtectedEnd]
}

// SerialNumber returns the console serial number.
func (img *Image) SerialNumber() string {
	return string(bytes.TrimRight(img.layout.SerialNumber[:], "\x00 "))
}

// MACAddress returns the console Ethernet address.
func (img *Image) MACAddress() net.HardwareAddr {
	mac := make(net.HardwareAddr, len(img.layout.MACAddress))
	copy(mac, img.layout.MACAddress[:])
	return mac
}

// VideoStandard returns the factory video standard.
func (img *Image) VideoStandard() VideoStandard {
	return VideoStandard(img.layout.VideoStandard)
}

// VideoStandard is the factory video encoding setting.
type VideoStandard uint32

// Known video standards.
const (
	VideoNTSCM VideoStandard = 0x00400100
	VideoNTSCJ VideoStandard = 0x00400200
	VideoPALI  VideoStandard = 0x00800300
)

func (v VideoStandard) String() string {
	switch v {
	case VideoNTSCM:
		return "NTSC-M"
	case VideoNTSCJ:
		return "NTSC-J"
	case VideoPALI:
		return "PAL-I"
	default:
		return "Unknown"
	}
}
