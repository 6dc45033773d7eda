// Package digest implements the SHA-1 compression function with a
// caller-supplied initial value, plus HMAC-SHA1 built on top of it.
//
// # Why not crypto/sha1
//
// The Xbox kernel does not hash EEPROM data with the standard SHA-1
// initial value. It resumes SHA-1 from midstates that were computed once
// over its secret HMAC pad blocks and then baked into the firmware. An
// Engine therefore takes an IV: five chaining words plus the number of
// bytes those words already account for.
//
//	e := digest.New(digest.Standard)
//	e.Write([]byte("abc"))
//	sum := e.Digest() // a9993e36...
//
// # Lifecycle
//
// An Engine is New/Reset, then any number of Write calls, then exactly
// one Sum or Digest. Finalizing twice without a Reset panics with
// ErrFinalized.
//
// # HMAC
//
// HMAC computes RFC 2104 HMAC-SHA1 over the standard IV:
//
//	mac := digest.HMAC(key, []byte("model"), []byte("serial"))
//
// Engines are not safe for concurrent use.
package digest
