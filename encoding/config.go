package encoding

import (
	"fmt"

	"github.com/arloliu/flotsam/internal/options"
)

// EncoderConfig holds the settings shared by Float64Encoder and Float32Encoder.
type EncoderConfig struct {
	capacity int
}

// EncoderOption represents a functional option for configuring an encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithCapacity pre-sizes the encoder buffer for n values.
func WithCapacity(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 0 {
			return fmt.Errorf("invalid capacity: %d", n)
		}
		c.capacity = n

		return nil
	})
}

// DecoderConfig holds the settings shared by Float64Decoder and Float32Decoder.
type DecoderConfig struct {
	strict bool
}

// DecoderOption represents a functional option for configuring a decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithStrict makes All and At validate every element they read and reject bit
// patterns that decode to NaN or infinity.
//
// A non-strict decoder reads elements without checks, which is the fastest path but
// returns meaningless values for malformed text.
func WithStrict(strict bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.strict = strict
	})
}

func newDecoderConfig(opts []DecoderOption) (DecoderConfig, error) {
	var cfg DecoderConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return cfg, err
	}

	return cfg, nil
}
