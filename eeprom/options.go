package eeprom

import "github.com/moffa90/go-xboxhdd/firmware"

// Config holds the codec configuration.
type Config struct {
	// AttemptCallback is called after every variant trial (optional)
	AttemptCallback AttemptCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// Variants is the ordered list of kernel variants to try
	Variants []firmware.Variant
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Variants: firmware.Variants(),
	}
}

// Option is a functional option for configuring the Codec.
type Option func(*Config)

// WithAttemptCallback sets a callback invoked after each variant trial.
//
// Example:
//
//	codec := eeprom.New(img,
//	    eeprom.WithAttemptCallback(func(a eeprom.Attempt) {
//	        fmt.Printf("%s matched=%v\n", a.Variant, a.Matched)
//	    }),
//	)
func WithAttemptCallback(callback AttemptCallback) Option {
	return func(c *Config) {
		c.AttemptCallback = callback
	}
}

// WithLogger sets a logger for the codec operations.
//
// Example:
//
//	codec := eeprom.New(img, eeprom.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithVariants restricts the search to the given variants, tried in the
// given order. Invalid and duplicate variants are dropped. If nothing
// valid remains, all variants are tried.
//
// Example:
//
//	codec := eeprom.New(img, eeprom.WithVariants(firmware.RetailLast))
func WithVariants(variants ...firmware.Variant) Option {
	return func(c *Config) {
		seen := make(map[firmware.Variant]bool, len(variants))
		filtered := make([]firmware.Variant, 0, len(variants))
		for _, v := range variants {
			if !v.Valid() || seen[v] {
				continue
			}
			seen[v] = true
			filtered = append(filtered, v)
		}
		if len(filtered) > 0 {
			c.Variants = filtered
		}
	}
}
