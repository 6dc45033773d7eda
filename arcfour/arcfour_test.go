package arcfour

import (
	"bytes"
	"crypto/rc4"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestApplyVectors(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		plaintext string
		want      string
	}{
		{
			name:      "Key",
			key:       "Key",
			plaintext: "Plaintext",
			want:      "BBF316E8D940AF0AD3",
		},
		{
			name:      "Wiki",
			key:       "Wiki",
			plaintext: "pedia",
			want:      "1021BF0420",
		},
		{
			name:      "Secret",
			key:       "Secret",
			plaintext: "Attack at dawn",
			want:      "45A01F645FC35B383552544B9BF5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply([]byte(tt.key), []byte(tt.plaintext))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.ToUpper(hex.EncodeToString(got)) != tt.want {
				t.Errorf("Apply() = %X, want %s", got, tt.want)
			}
		})
	}
}

func TestApplyRoundTrip(t *testing.T) {
	key := []byte("Key")
	plain := []byte("Hello World")

	enc, err := Apply(key, plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bytes.Equal(enc, plain) {
		t.Fatal("ciphertext equals plaintext")
	}

	dec, err := Apply(key, enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(dec) != "Hello World" {
		t.Errorf("round trip = %q, want %q", dec, "Hello World")
	}
}

func TestCipherMatchesStdlib(t *testing.T) {
	data := make([]byte, 517)
	for i := range data {
		data[i] = byte(i ^ 0x5a)
	}

	for _, n := range []int{1, 5, 16, 20, 255, 256} {
		key := make([]byte, n)
		for i := range key {
			key[i] = byte(i*31 + n)
		}

		ours, err := NewCipher(key)
		if err != nil {
			t.Fatalf("NewCipher(len %d): %v", n, err)
		}
		ref, err := rc4.NewCipher(key)
		if err != nil {
			t.Fatalf("rc4.NewCipher(len %d): %v", n, err)
		}

		// Uneven chunks exercise cursor persistence across calls.
		got := make([]byte, len(data))
		ours.XORKeyStream(got[:7], data[:7])
		ours.XORKeyStream(got[7:300], data[7:300])
		ours.XORKeyStream(got[300:], data[300:])

		want := make([]byte, len(data))
		ref.XORKeyStream(want, data)

		if !bytes.Equal(got, want) {
			t.Errorf("key length %d: keystream differs from crypto/rc4", n)
		}
	}
}

func TestCipherInPlace(t *testing.T) {
	buf := []byte("in place")
	c, _ := NewCipher([]byte("k"))
	c.XORKeyStream(buf, buf)

	c, _ = NewCipher([]byte("k"))
	c.XORKeyStream(buf, buf)

	if string(buf) != "in place" {
		t.Errorf("in-place round trip = %q", buf)
	}
}

func TestNewCipherKeySize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "empty", size: 0, wantErr: true},
		{name: "one byte", size: 1},
		{name: "max", size: 256},
		{name: "too long", size: 257, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCipher(make([]byte, tt.size))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var kse KeySizeError
			if !errors.As(err, &kse) {
				t.Fatalf("error = %v, want KeySizeError", err)
			}
			if int(kse) != tt.size {
				t.Errorf("KeySizeError = %d, want %d", kse, tt.size)
			}
		})
	}
}

func TestXORKeyStreamEmpty(t *testing.T) {
	c, _ := NewCipher([]byte("k"))
	c.XORKeyStream(nil, nil)

	got, _ := Apply([]byte("k"), []byte{})
	if len(got) != 0 {
		t.Errorf("Apply on empty input returned %d bytes", len(got))
	}
}

func BenchmarkXORKeyStream(b *testing.B) {
	c, _ := NewCipher([]byte("benchmark key"))
	buf := make([]byte, 28)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.XORKeyStream(buf, buf)
	}
}
