package types

import "time"

// DefaultRowLimit is the row cap used when Config.RowLimit is zero.
const DefaultRowLimit = MaxRowLimit

// Config holds session parameters.
type Config struct {
	RowLimit    int           `json:"row_limit" yaml:"row_limit"`
	BusyTimeout time.Duration `json:"busy_timeout" yaml:"busy_timeout"`
}

// Validate checks that the Config is well-formed. A zero RowLimit is valid
// and means DefaultRowLimit.
func (c Config) Validate() error {
	if c.RowLimit < 0 || c.RowLimit > MaxRowLimit {
		return ErrRowLimitInvalid
	}
	if c.BusyTimeout < 0 {
		return ErrBusyTimeoutInvalid
	}
	return nil
}

// EffectiveRowLimit returns RowLimit, or DefaultRowLimit when unset.
func (c Config) EffectiveRowLimit() int {
	if c.RowLimit == 0 {
		return DefaultRowLimit
	}
	return c.RowLimit
}
