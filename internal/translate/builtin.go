package translate

import (
	"context"
	"strings"

	"archassist/internal/config"
	"archassist/internal/types"
)

// Builtin applies the fixed intent rule table to prompt. The second return
// is false when no rule matched, signaling the caller to fall back to the
// LLM translator. Rules are evaluated in priority order; keyword rules use
// case-insensitive substring matching.
func (t *Translator) Builtin(ctx context.Context, prompt string, cfg config.ExecConfig) ([]types.Suggestion, bool) {
	lower := strings.ToLower(prompt)
	fields := strings.Fields(lower)
	first := ""
	if len(fields) > 0 {
		first = fields[0]
	}
	rest := ""
	if len(fields) > 1 {
		rest = strings.Join(fields[1:], " ")
	}

	if lower == "test ai" {
		return []types.Suggestion{{Command: "echo ai-ok", Reason: "built-in test command"}}, true
	}

	if first == "install" && rest != "" {
		// Online installs defer to the LLM for package-name
		// disambiguation; offline falls back to the literal name.
		if cfg.Offline {
			installer := installerFor(rest, cfg)
			return []types.Suggestion{{
				Command: installCommandFor(installer, rest, cfg),
				Reason:  "install package",
			}}, true
		}
		return nil, false
	}

	if (first == "remove" || first == "uninstall" || first == "delete") && rest != "" {
		installer := installerFor(rest, cfg)
		base := installer + " -R " + rest
		if strings.Contains(installer, "pacman") {
			base = installer + " -Rsn " + rest
		}
		return []types.Suggestion{{
			Command: applyPkgFlags(base, cfg),
			Reason:  "remove package",
		}}, true
	}

	if (first == "open" || first == "launch" || first == "start") && rest != "" {
		if cfg.Offline {
			if install, ok := t.buildInstallCommand(ctx, rest, "-S --needed", cfg); ok {
				return []types.Suggestion{
					{Command: install, Reason: "ensure app is installed"},
					{Command: "launch " + rest, Reason: "launch app"},
				}, true
			}
			installer := installerFor(rest, cfg)
			return []types.Suggestion{
				{Command: installCommandFor(installer, rest, cfg), Reason: "ensure app is installed"},
				{Command: "launch " + rest, Reason: "launch app"},
			}, true
		}
		// Online: let the LLM handle fuzzy package mapping.
		return nil, false
	}

	if strings.Contains(lower, "fix sound") || strings.Contains(lower, "fix audio") || strings.Contains(lower, "sound") {
		return []types.Suggestion{
			{Command: "systemctl --user restart pipewire wireplumber", Reason: "restart audio services"},
			{Command: "pactl info", Reason: "inspect pulse server state"},
		}, true
	}

	if strings.Contains(lower, "fix internet") || strings.Contains(lower, "fix network") || strings.Contains(lower, "network") {
		return []types.Suggestion{
			{Command: "sudo systemctl restart NetworkManager", Reason: "restart network manager"},
			{Command: "nmcli networking on", Reason: "enable networking"},
			{Command: "nmcli -t -f DEVICE,STATE d", Reason: "list device states"},
		}, true
	}

	if strings.Contains(lower, "fix time") || strings.Contains(lower, "time sync") || strings.Contains(lower, "clock") {
		return []types.Suggestion{
			{Command: "sudo timedatectl set-ntp true", Reason: "enable NTP sync"},
			{Command: "timedatectl status", Reason: "show time sync status"},
		}, true
	}

	if strings.Contains(lower, "upgrade system") || strings.Contains(lower, "update system") || first == "upgrade" {
		installer := installerFor("base", cfg)
		return []types.Suggestion{{
			Command: applyPkgFlags(installer+" -Syu", cfg),
			Reason:  "upgrade system packages",
		}}, true
	}

	if strings.Contains(lower, "clean cache") || strings.Contains(lower, "cleanup") || strings.Contains(lower, "clear cache") {
		installer := installerFor("base", cfg)
		return []types.Suggestion{{
			Command: applyPkgFlags(installer+" -Sc", cfg),
			Reason:  "clean package cache",
		}}, true
	}

	if strings.Contains(lower, "wifi status") || strings.Contains(lower, "network status") {
		return []types.Suggestion{
			{Command: "nmcli general status", Reason: "show network status"},
			{Command: "nmcli -t -f DEVICE,STATE d", Reason: "list device connectivity"},
		}, true
	}

	if strings.Contains(lower, "fix bluetooth") || strings.Contains(lower, "bluetooth") {
		return []types.Suggestion{
			{Command: "sudo systemctl restart bluetooth", Reason: "restart bluetooth service"},
			{Command: "bluetoothctl show", Reason: "show bluetooth adapter state"},
		}, true
	}

	if (first == "logs" || first == "journal") && rest != "" {
		return []types.Suggestion{{
			Command: "journalctl -u " + rest + " --no-pager -n 50",
			Reason:  "tail service logs",
		}}, true
	}

	return nil, false
}
