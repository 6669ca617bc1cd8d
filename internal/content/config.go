package content

// Params holds sampling settings for one generator.
type Params struct {
	MaxTokens   int
	Temperature float64
}

// Config holds settings for the four generators.
type Config struct {
	Explain Params
	Writing Params
	Quiz    Params
	Answer  Params
}

// DefaultConfig returns the tuned defaults for each generator.
func DefaultConfig() Config {
	return Config{
		Explain: Params{MaxTokens: 2000, Temperature: 0.7},
		Writing: Params{MaxTokens: 2000, Temperature: 0.5},
		Quiz:    Params{MaxTokens: 1500, Temperature: 0.7},
		Answer:  Params{MaxTokens: 1500, Temperature: 0.7},
	}
}
