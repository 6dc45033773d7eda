// Command xbhddkey recovers the hard-drive key from an original Xbox
// EEPROM dump and derives the drive's ATA password.
//
// Usage:
//
//	xbhddkey -f eeprom.bin -m ST310014ACE -s 5JV0ABC1
//	xbhddkey -f eeprom.bin -m ST310014ACE -s 5JV0ABC1 -o bin -w 32 --out pw.bin
//	xbhddkey --config drive.yaml -v
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
