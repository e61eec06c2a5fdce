package translate

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"archassist/internal/config"
	"archassist/internal/llm"
	"archassist/internal/resolver"
	"archassist/internal/types"
)

// newOfflineTranslator builds a Translator whose resolver never needs the
// network (every test below is either offline or rule-only).
func newOfflineTranslator() *Translator {
	res := resolver.New(zap.NewNop())
	client := llm.New(llm.Config{}, zap.NewNop())
	return New(res, client, zap.NewNop())
}

func TestBuiltin_TestAI(t *testing.T) {
	tr := newOfflineTranslator()
	suggestions, ok := tr.Builtin(context.Background(), "test ai", config.ExecConfig{})
	require.True(t, ok)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "echo ai-ok", suggestions[0].Command)
}

func TestBuiltin_InstallDefersToLLMWhenOnline(t *testing.T) {
	tr := newOfflineTranslator()
	suggestions, ok := tr.Builtin(context.Background(), "install spotify", config.ExecConfig{})
	assert.False(t, ok)
	assert.Nil(t, suggestions)
}

func TestBuiltin_InstallOffline(t *testing.T) {
	tr := newOfflineTranslator()
	cases := []struct {
		name string
		pkg  string
		cfg  config.ExecConfig
		want string
	}{
		{"default", "spotify", config.ExecConfig{Offline: true}, "sudo pacman -S --needed spotify"},
		{"prefer paru", "spotify", config.ExecConfig{Offline: true, PreferParu: true}, "paru -S --needed spotify"},
		{"bin suffix", "brave-bin", config.ExecConfig{Offline: true}, "paru -S --needed brave-bin"},
		{"no sudo", "spotify", config.ExecConfig{Offline: true, NoSudo: true}, "pacman -S --needed spotify"},
		{"noconfirm", "spotify", config.ExecConfig{Offline: true, Yes: true}, "sudo pacman -S --needed spotify --noconfirm"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			suggestions, ok := tr.Builtin(context.Background(), "install "+tc.pkg, tc.cfg)
			require.True(t, ok)
			require.Len(t, suggestions, 1)
			assert.Equal(t, tc.want, suggestions[0].Command)
		})
	}
}

func TestBuiltin_Remove(t *testing.T) {
	tr := newOfflineTranslator()

	suggestions, ok := tr.Builtin(context.Background(), "remove spotify", config.ExecConfig{})
	require.True(t, ok)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "sudo pacman -Rsn spotify", suggestions[0].Command)

	suggestions, ok = tr.Builtin(context.Background(), "uninstall spotify", config.ExecConfig{PreferParu: true})
	require.True(t, ok)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "paru -R spotify", suggestions[0].Command)

	suggestions, ok = tr.Builtin(context.Background(), "delete spotify", config.ExecConfig{NoSudo: true, Yes: true})
	require.True(t, ok)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "pacman -Rsn spotify --noconfirm", suggestions[0].Command)
}

func TestBuiltin_OpenDefersToLLMWhenOnline(t *testing.T) {
	tr := newOfflineTranslator()
	_, ok := tr.Builtin(context.Background(), "open word", config.ExecConfig{})
	assert.False(t, ok)
}

func TestBuiltin_OpenOfflineInstallThenLaunch(t *testing.T) {
	tr := newOfflineTranslator()
	suggestions, ok := tr.Builtin(context.Background(), "open spotify", config.ExecConfig{Offline: true})
	require.True(t, ok)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "sudo pacman -S --needed spotify", suggestions[0].Command)
	assert.Equal(t, "launch spotify", suggestions[1].Command)
}

func TestBuiltin_FixSound(t *testing.T) {
	tr := newOfflineTranslator()
	suggestions, ok := tr.Builtin(context.Background(), "fix sound", config.ExecConfig{})
	require.True(t, ok)

	want := []types.Suggestion{
		{Command: "systemctl --user restart pipewire wireplumber", Reason: "restart audio services"},
		{Command: "pactl info", Reason: "inspect pulse server state"},
	}
	if diff := cmp.Diff(want, suggestions); diff != "" {
		t.Errorf("fix sound suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltin_KeywordRules(t *testing.T) {
	tr := newOfflineTranslator()
	cases := []struct {
		prompt string
		first  string
		count  int
	}{
		{"fix internet please", "sudo systemctl restart NetworkManager", 3},
		{"my clock is wrong", "sudo timedatectl set-ntp true", 2},
		{"upgrade system", "sudo pacman -Syu", 1},
		{"clean cache", "sudo pacman -Sc", 1},
		{"wifi status", "nmcli general status", 2},
		{"fix bluetooth", "sudo systemctl restart bluetooth", 2},
		{"logs sshd", "journalctl -u sshd --no-pager -n 50", 1},
	}
	for _, tc := range cases {
		t.Run(tc.prompt, func(t *testing.T) {
			suggestions, ok := tr.Builtin(context.Background(), tc.prompt, config.ExecConfig{})
			require.True(t, ok)
			require.Len(t, suggestions, tc.count)
			assert.Equal(t, tc.first, suggestions[0].Command)
		})
	}
}

func TestBuiltin_NetworkRuleShadowsNetworkStatus(t *testing.T) {
	// "network status" contains "network", so the repair rule wins; only
	// "wifi status" reaches the status rule. Longstanding table order.
	tr := newOfflineTranslator()
	suggestions, ok := tr.Builtin(context.Background(), "network status", config.ExecConfig{})
	require.True(t, ok)
	assert.Equal(t, "sudo systemctl restart NetworkManager", suggestions[0].Command)
}

func TestBuiltin_NoMatch(t *testing.T) {
	tr := newOfflineTranslator()
	for _, prompt := range []string{"make me a sandwich", "install", "remove", "logs"} {
		_, ok := tr.Builtin(context.Background(), prompt, config.ExecConfig{})
		assert.False(t, ok, "expected no match for %q", prompt)
	}
}
