// Package firmware holds the Xbox kernel variants and the keyed double
// hash they use to protect the EEPROM key block.
//
// # Variants
//
// Four kernel generations shipped with different EEPROM keys:
//
//	Debug         Debug & Chihiro
//	RetailFirst   1.0 (first retail)
//	RetailMiddle  1.1 - 1.4 (middle retail)
//	RetailLast    1.6 (last retail)
//
// Each kernel carries two SHA-1 midstates instead of the key itself.
// They are the chaining words left after absorbing the HMAC inner and
// outer pad blocks. The tables here are those constants, copied from
// the kernels and never computed at runtime.
//
// # Derive
//
// Derive resumes SHA-1 from the step-1 midstate over the message, then
// resumes from the step-2 midstate over that 20-byte result:
//
//	key := firmware.Derive(firmware.RetailMiddle, storedHash)
//
// Variants() returns the variants in the order a search should try them.
package firmware
