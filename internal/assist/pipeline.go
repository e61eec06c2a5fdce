// Package assist orchestrates the intent-resolution pipeline: builtin rule
// translation first, LLM fallback second, with every resulting command
// flowing through the safety validator into the execution engine.
package assist

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"archassist/internal/config"
	"archassist/internal/llm"
	"archassist/internal/resolver"
	"archassist/internal/runner"
	"archassist/internal/safety"
	"archassist/internal/translate"
	"archassist/internal/types"
)

// Options wires a Pipeline. Zero stream fields default to the process's
// standard streams; zero URL fields default to the public services.
type Options struct {
	Logger  *zap.Logger
	APIKey  string
	Model   string
	BaseURL string

	// Registry endpoints, overridable for tests.
	RepoSearchURL string
	AurRPCURL     string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Pipeline owns the translator and the execution engine for one process.
type Pipeline struct {
	translator *translate.Translator
	runner     *runner.Runner
	out        io.Writer
	log        *zap.Logger
}

// New builds a Pipeline from opts.
func New(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	var res *resolver.Resolver
	if opts.RepoSearchURL != "" || opts.AurRPCURL != "" {
		res = resolver.NewWithURLs(log, opts.RepoSearchURL, opts.AurRPCURL)
	} else {
		res = resolver.New(log)
	}

	client := llm.New(llm.Config{
		APIKey:  opts.APIKey,
		Model:   opts.Model,
		BaseURL: opts.BaseURL,
	}, log)

	return &Pipeline{
		translator: translate.New(res, client, log),
		runner:     runner.NewWithIO(log, opts.Stdin, opts.Stdout, opts.Stderr),
		out:        opts.Stdout,
		log:        log,
	}
}

// HandlePrompt resolves prompt into suggestions and, in auto mode, executes
// them after confirmation. Suggest-only is the default.
func (p *Pipeline) HandlePrompt(ctx context.Context, prompt string, cfg config.ExecConfig) error {
	if suggestions, ok := p.translator.Builtin(ctx, prompt, cfg); ok {
		return p.present(suggestions, cfg)
	}

	// No builtin rule matched. The LLM path needs the network and a
	// credential; without both there is nothing left to offer.
	if cfg.Offline {
		return types.NoSuggestion("no builtin rule matched and LLM fallback is disabled offline")
	}
	if !p.translator.LLMAvailable() {
		return types.NoSuggestion("no builtin rule matched and %s is not set", config.EnvAPIKey)
	}

	cmds, err := p.translator.ViaLLM(ctx, prompt, cfg)
	if err != nil {
		return err
	}
	suggestions := make([]types.Suggestion, 0, len(cmds))
	for _, cmd := range cmds {
		suggestions = append(suggestions, types.Suggestion{Command: cmd, Reason: "LLM suggestion"})
	}
	return p.present(suggestions, cfg)
}

// present prints the batch and, in auto mode, confirms and executes it.
func (p *Pipeline) present(suggestions []types.Suggestion, cfg config.ExecConfig) error {
	for _, s := range suggestions {
		fmt.Fprintf(p.out, "%s    # %s\n", s.Command, s.Reason)
	}

	if !cfg.Auto {
		// Suggest but do not run unless explicitly requested.
		return nil
	}

	ok, err := p.runner.Confirm(cfg)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	return p.runner.ExecuteBatch(suggestions, cfg)
}

// RunSingle validates and executes one literal command line.
func (p *Pipeline) RunSingle(command string, cfg config.ExecConfig) error {
	if err := safety.Validate(command); err != nil {
		return err
	}
	return p.runner.Run(command, cfg)
}
