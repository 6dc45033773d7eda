// Package eeprom recovers the hard-drive key from an original Xbox
// EEPROM image.
//
// # Image Layout
//
// The EEPROM is exactly 256 bytes. The first 48 bytes are the protected
// block:
//
//	0x00  StoredHash   20  keyed hash of the plaintext below
//	0x14  Confounder    8  RC4 ciphertext
//	0x1C  DriveKey     16  RC4 ciphertext
//	0x2C  Region        4  RC4 ciphertext, little-endian uint32
//
// The factory section that follows is plaintext (serial number, MAC
// address, online key, video standard), and the rest is user settings.
//
// # Recovery
//
// The kernel variant that sealed the image is not recorded anywhere, so
// Decode tries each one in turn:
//
//  1. key = firmware.Derive(v, StoredHash)
//  2. plaintext = RC4(key) over bytes 0x14..0x2F
//  3. confirm = firmware.Derive(v, plaintext[0:8], plaintext[8:28])
//  4. accept v if confirm equals StoredHash
//
// If no variant verifies, Decode fails with a *RecoveryError.
//
// # Usage
//
// Load an image from disk and decode it:
//
//	img, err := eeprom.Parse("eeprom.bin")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dec, err := eeprom.New(img).Decode()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HDD key: %X\n", dec.DriveKey())
//	fmt.Printf("Region:  %s\n", dec.RegionName())
//	fmt.Printf("Kernel:  %s\n", dec.FirmwareLabel())
//
// Or decode bytes that are already in memory:
//
//	dec, err := eeprom.Decode(raw)
//
// # Options
//
//	codec := eeprom.New(img,
//	    eeprom.WithLogger(myLogger),
//	    eeprom.WithAttemptCallback(func(a eeprom.Attempt) {
//	        fmt.Printf("[%d/%d] %s matched=%v\n", a.Index+1, a.Total, a.Variant, a.Matched)
//	    }),
//	    eeprom.WithVariants(firmware.RetailMiddle, firmware.RetailLast),
//	)
//
// # Error Handling
//
//   - FormatError: the input is not exactly 256 bytes
//   - RecoveryError: no kernel variant verified the stored hash
//   - ErrNotDecoded: decoded fields were requested before a successful decode
//
// A Codec is not safe for concurrent use. Use one Codec per image.
package eeprom
