package planner

// Config holds plan generation settings.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns the defaults used for both generation and
// refinement. A full plan with five or six procedure steps runs to a few
// thousand tokens, so the budget is generous.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}
