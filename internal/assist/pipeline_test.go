package assist

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archassist/internal/config"
	"archassist/internal/types"
)

func newTestPipeline(t *testing.T, opts Options, input string) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts.Stdin = strings.NewReader(input)
	opts.Stdout = &out
	opts.Stderr = &out
	return New(opts), &out
}

// llmBackend fakes the chat endpoint plus empty registries, so the LLM
// fallback path can run end to end without the network.
func llmBackend(t *testing.T, content string) Options {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
	})
	mux.HandleFunc("/repo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	})
	mux.HandleFunc("/aur", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resultcount":0}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return Options{
		APIKey:        "test-key",
		BaseURL:       srv.URL,
		RepoSearchURL: srv.URL + "/repo",
		AurRPCURL:     srv.URL + "/aur",
	}
}

func TestHandlePrompt_SuggestOnlyByDefault(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "")
	err := p.HandlePrompt(context.Background(), "fix sound", config.ExecConfig{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "systemctl --user restart pipewire wireplumber    # restart audio services\n")
	assert.Contains(t, out.String(), "pactl info    # inspect pulse server state\n")
	assert.NotContains(t, out.String(), "Run these commands?")
}

func TestHandlePrompt_AutoDeclinedRunsNothing(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "n\n")
	err := p.HandlePrompt(context.Background(), "test ai", config.ExecConfig{Auto: true})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Run these commands? [y/N] ")
	// The suggestion is printed once with its reason; a second bare echo
	// line would mean the command actually ran.
	assert.Equal(t, 1, strings.Count(out.String(), "echo ai-ok"))
	assert.NotContains(t, out.String(), "\nai-ok\n")
}

func TestHandlePrompt_AutoConfirmedDryRun(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "y\n")
	err := p.HandlePrompt(context.Background(), "test ai", config.ExecConfig{Auto: true, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out.String(), "echo ai-ok"))
	assert.NotContains(t, out.String(), "\nai-ok\n")
}

func TestHandlePrompt_AutoConfirmedExecutes(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "y\n")
	err := p.HandlePrompt(context.Background(), "test ai", config.ExecConfig{Auto: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\nai-ok\n")
}

func TestHandlePrompt_UnmatchedOffline(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "")
	err := p.HandlePrompt(context.Background(), "make me a sandwich", config.ExecConfig{Offline: true})
	require.Error(t, err)
	assert.True(t, types.IsNoSuggestion(err))
	assert.Empty(t, out.String())
}

func TestHandlePrompt_UnmatchedWithoutCredential(t *testing.T) {
	p, _ := newTestPipeline(t, Options{}, "")
	err := p.HandlePrompt(context.Background(), "make me a sandwich", config.ExecConfig{})
	require.Error(t, err)
	assert.True(t, types.IsNoSuggestion(err))
	assert.Contains(t, err.Error(), config.EnvAPIKey)
}

func TestHandlePrompt_LLMFallbackSuggests(t *testing.T) {
	p, out := newTestPipeline(t, llmBackend(t, "pactl info"), "")
	err := p.HandlePrompt(context.Background(), "why is audio quiet", config.ExecConfig{})
	require.NoError(t, err)
	assert.Equal(t, "pactl info    # LLM suggestion\n", out.String())
}

func TestHandlePrompt_LLMFallbackAllUnsafe(t *testing.T) {
	p, out := newTestPipeline(t, llmBackend(t, "rm -rf /\nreboot now"), "")
	err := p.HandlePrompt(context.Background(), "why is audio quiet", config.ExecConfig{})
	require.Error(t, err)
	assert.True(t, types.IsCommandFailed(err))
	assert.Empty(t, out.String())
}

func TestRunSingle_UnsafeRejected(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "")
	err := p.RunSingle("echo hi && reboot", config.ExecConfig{})
	require.Error(t, err)
	assert.True(t, types.IsUnsafe(err))
	assert.Empty(t, out.String())
}

func TestRunSingle_ExecutesAllowedCommand(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "")
	err := p.RunSingle("echo hi", config.ExecConfig{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "echo hi\n")
	assert.Contains(t, out.String(), "\nhi\n")
}

func TestRunSingle_DryRun(t *testing.T) {
	p, out := newTestPipeline(t, Options{}, "")
	err := p.RunSingle("sudo pacman -Syu", config.ExecConfig{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, "sudo pacman -Syu\n", out.String())
}
