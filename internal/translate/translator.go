// Package translate turns a free-text prompt into vetted command
// suggestions. A fixed builtin rule table is consulted first; prompts it
// cannot answer fall back to the remote chat service, whose output is
// sanitized, re-validated and rewritten before anything may run.
package translate

import (
	"go.uber.org/zap"

	"archassist/internal/llm"
	"archassist/internal/resolver"
)

// Translator holds the shared dependencies of both translation paths.
type Translator struct {
	res *resolver.Resolver
	llm *llm.Client
	log *zap.Logger
}

// New wires a Translator.
func New(res *resolver.Resolver, client *llm.Client, log *zap.Logger) *Translator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Translator{res: res, llm: client, log: log}
}

// LLMAvailable reports whether the fallback path holds a credential.
func (t *Translator) LLMAvailable() bool {
	return t.llm.Available()
}
