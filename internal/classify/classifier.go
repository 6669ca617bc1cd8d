package classify

import (
	"context"

	"github.com/abhisek/baba/internal/llm"
	"github.com/abhisek/baba/internal/logger"
)

// Classifier combines the completion-service classifier with the
// rule-based fallback.
type Classifier struct {
	llm *LLMClassifier
	log *logger.Logger
}

// NewClassifier creates a Classifier. If provider is nil, only rule-based
// classification is available.
func NewClassifier(provider llm.Provider, log *logger.Logger) *Classifier {
	if log == nil {
		log = logger.Nop()
	}
	c := &Classifier{log: log}
	if provider != nil {
		c.llm = NewLLMClassifier(provider, DefaultLLMClassifierConfig())
	}
	return c
}

// Classify always returns a usable Classification.
func (c *Classifier) Classify(ctx context.Context, input string) Classification {
	if c.llm == nil {
		return Fallback(input, nil)
	}

	out := c.llm.Classify(ctx, input)
	if out.OK() {
		return out.Classification
	}

	c.log.Warn("classifier fell back to rules", "error", out.Err)
	return Fallback(input, out.Err)
}
