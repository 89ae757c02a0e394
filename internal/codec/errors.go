package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when the packed stream ends inside a field.
	ErrTruncated = errors.New("packed record truncated")
	// ErrCorrupt is returned when a decoded field holds a value the format never writes.
	ErrCorrupt = errors.New("packed record corrupt")
	// ErrUnknownTrump is the corruption of a trump tag outside 0..4.
	ErrUnknownTrump = fmt.Errorf("%w: unrecognized trump", ErrCorrupt)
	// ErrValueRange is returned when a value cannot be represented by its slot.
	ErrValueRange = errors.New("value out of range")
	// ErrFieldOverflow is returned when a round's trick counts need more bits than its field holds.
	ErrFieldOverflow = errors.New("trick counts exceed packed field width")
)
