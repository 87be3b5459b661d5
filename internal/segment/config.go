package segment

import (
	"errors"
	"fmt"
)

// DenoiseMode selects which buffer the denoiser reads neighbor counts from.
type DenoiseMode int

const (
	// DenoiseInPlace counts neighbors in the buffer being rewritten, so pixels
	// scanned later observe erasures made earlier in the same pass.
	DenoiseInPlace DenoiseMode = iota

	// DenoiseSnapshot counts neighbors in a copy of the foreground mask taken
	// before the pass starts.
	DenoiseSnapshot
)

// String returns the mode name used in tool arguments.
func (m DenoiseMode) String() string {
	switch m {
	case DenoiseInPlace:
		return "in_place"
	case DenoiseSnapshot:
		return "snapshot"
	default:
		return fmt.Sprintf("DenoiseMode(%d)", int(m))
	}
}

// ParseDenoiseMode maps "in_place" or "snapshot" to a DenoiseMode. The empty
// string selects DenoiseInPlace.
func ParseDenoiseMode(s string) (DenoiseMode, error) {
	switch s {
	case "", "in_place", "in-place":
		return DenoiseInPlace, nil
	case "snapshot":
		return DenoiseSnapshot, nil
	default:
		return 0, fmt.Errorf("%w: unknown denoise mode %q", ErrInvalidConfig, s)
	}
}

// Default pipeline parameters.
const (
	DefaultForegroundThreshold uint8 = 0xC0
	DefaultDenoiseMinFriends         = 3
	DefaultMinComponentSize          = 30
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid segmentation config")

// Config holds the tunable pipeline parameters.
type Config struct {
	// ForegroundThreshold is the minimum per-channel intensity of a
	// foreground pixel.
	ForegroundThreshold uint8 `json:"foreground_threshold"`

	// DenoiseMinFriends is the number of foreground 8-neighbors a pixel needs
	// to survive denoising. 0 disables the denoiser.
	DenoiseMinFriends int `json:"denoise_min_friends"`

	// MinComponentSize discards components with this many pixels or fewer.
	MinComponentSize int `json:"min_component_size"`

	DenoiseMode DenoiseMode `json:"-"`

	// ClearBorder blanks the outermost ring before denoising.
	ClearBorder bool `json:"clear_border"`

	// MaxWorklist caps the flood-fill frontier. 0 means unbounded.
	MaxWorklist int `json:"max_worklist"`
}

// DefaultConfig returns the parameters of the reference captcha pipeline.
func DefaultConfig() Config {
	return Config{
		ForegroundThreshold: DefaultForegroundThreshold,
		DenoiseMinFriends:   DefaultDenoiseMinFriends,
		MinComponentSize:    DefaultMinComponentSize,
		DenoiseMode:         DenoiseInPlace,
		ClearBorder:         true,
	}
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	if c.DenoiseMinFriends < 0 || c.DenoiseMinFriends > 8 {
		return fmt.Errorf("%w: denoise_min_friends %d outside 0-8", ErrInvalidConfig, c.DenoiseMinFriends)
	}
	if c.MinComponentSize < 0 {
		return fmt.Errorf("%w: min_component_size %d is negative", ErrInvalidConfig, c.MinComponentSize)
	}
	if c.MaxWorklist < 0 {
		return fmt.Errorf("%w: max_worklist %d is negative", ErrInvalidConfig, c.MaxWorklist)
	}
	if c.DenoiseMode != DenoiseInPlace && c.DenoiseMode != DenoiseSnapshot {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.DenoiseMode)
	}
	return nil
}
