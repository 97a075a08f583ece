// Package errors holds the sentinel errors shared by the binvid packages.
package errors

import "errors"

var (
	// Input errors 📥
	ErrSourceNotFound  = errors.New("❌ input source not found")
	ErrInvalidMagic    = errors.New("❌ invalid container magic")
	ErrTruncatedHeader = errors.New("❌ truncated container header")

	// Settings errors ⚙️
	ErrUnknownPreset   = errors.New("❌ unknown preset")
	ErrUnknownMode     = errors.New("❌ unknown output mode")
	ErrInvalidSettings = errors.New("❌ invalid settings")
	ErrUnknownFormat   = errors.New("❌ unknown sample image format")

	// Output errors 💾
	ErrWriteFailed     = errors.New("❌ write failed")
	ErrPayloadTooLarge = errors.New("❌ payload too large for container")
)
