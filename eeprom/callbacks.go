package eeprom

import "github.com/moffa90/go-xboxhdd/firmware"

// Attempt describes one kernel variant trial during Decode.
// Passed to AttemptCallback after each trial.
type Attempt struct {
	// Variant is the kernel variant that was tried
	Variant firmware.Variant

	// Index is the 0-based position of this trial
	Index int

	// Total is the number of variants the search will try at most
	Total int

	// Matched reports whether the stored hash verified under Variant
	Matched bool
}

// AttemptCallback is called after every variant trial.
//
// Example:
//
//	codec := eeprom.New(img,
//	    eeprom.WithAttemptCallback(func(a eeprom.Attempt) {
//	        fmt.Printf("[%d/%d] %s\n", a.Index+1, a.Total, a.Variant)
//	    }),
//	)
type AttemptCallback func(Attempt)

// Logger is an optional logging interface that can be provided to the codec.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	codec := eeprom.New(img, eeprom.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
