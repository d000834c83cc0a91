package dfa

// Config configures subset construction.
type Config struct {
	// MaxStates is the maximum number of DFA states subset construction may
	// discover before failing with ErrStateLimitExceeded.
	//
	// Default: 0 (unlimited)
	//
	// The number of states is bounded by 2^n for an NFA with n states and
	// patterns such as (a|b)*a(a|b)(a|b)...(a|b) reach that bound. Set a
	// limit when patterns come from untrusted input.
	MaxStates int
}

// DefaultConfig returns a configuration with no state limit.
func DefaultConfig() Config {
	return Config{
		MaxStates: 0,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates < 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be >= 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}
