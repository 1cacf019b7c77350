package echochat

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidConfig indicates a config file or environment value could not be applied.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidScript indicates a test script could not be parsed.
	ErrInvalidScript = errors.New("invalid test script")
	// ErrFontLoad indicates TTF/OTF data could not be parsed into a face.
	ErrFontLoad = errors.New("font load failed")
)
