package translate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"archassist/internal/config"
	"archassist/internal/safety"
	"archassist/internal/types"
)

// systemPrompt constrains the assistant to emit only shell commands the
// validator has a chance of accepting.
const systemPrompt = "You are an Arch Linux expert. Respond with ONLY shell commands, one per line. " +
	"Use pacman for repo packages; use paru for AUR packages (e.g., *-bin). " +
	"Do not suggest generic shells (bash/sh) as commands. " +
	"Never use dangerous operators (rm, dd, mkfs, pipes, redirects). " +
	"Keep responses concise and focused on the requested task."

// officePackage is the canonical office-suite package substituted when the
// prompt asks for word-processing software.
const officePackage = "libreoffice-fresh"

// ViaLLM translates prompt through the chat service. The remote model is a
// best-effort mapper whose package-tool choice is untrusted: its output is
// sanitized, re-validated, and every install line is rebuilt through the
// registry resolver before anything may run.
func (t *Translator) ViaLLM(ctx context.Context, prompt string, cfg config.ExecConfig) ([]string, error) {
	if cfg.Offline {
		return nil, types.CommandFailed("offline mode: LLM suggestions disabled")
	}

	content, err := t.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		t.log.Debug("llm raw content", zap.String("content", content))
	}

	cmds := sanitizeLines(content)
	if len(cmds) == 0 {
		return nil, types.CommandFailed("LLM returned an empty command list")
	}

	safe := cmds[:0]
	for _, cmd := range cmds {
		if safety.Validate(cmd) == nil {
			safe = append(safe, cmd)
		}
	}
	if len(safe) == 0 {
		return nil, types.CommandFailed("LLM produced no safe commands (blocked or unsupported)")
	}

	adjusted := adjustForIntent(safe, prompt)

	remapped := make([]string, 0, len(adjusted))
	for _, cmd := range adjusted {
		remapped = append(remapped, t.rewriteInstallWithResolution(ctx, cmd, cfg))
	}

	// A launch intent with only installs still needs a launch step.
	if isLaunchIntent(prompt) && !containsLaunch(remapped) {
		if app, ok := extractAppFromInstall(remapped); ok {
			remapped = append(remapped, "launch "+app)
		}
	}

	return remapped, nil
}

// sanitizeLines splits content into trimmed, non-empty, first-seen-order
// deduplicated command candidates.
func sanitizeLines(content string) []string {
	seen := make(map[string]bool)
	var cmds []string
	for _, line := range strings.Split(content, "\n") {
		clean := strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "`"))
		if clean == "" || seen[clean] {
			continue
		}
		seen[clean] = true
		cmds = append(cmds, clean)
	}
	return cmds
}

// adjustForIntent rewrites or drops commands based on what the prompt
// actually asked for: office prompts get the canonical suite package,
// AUR-helper bootstrap installs are dropped, and bare app tokens under a
// launch intent are wrapped as launch pseudo-commands. If everything gets
// filtered out the original list is returned untouched.
func adjustForIntent(cmds []string, prompt string) []string {
	promptLower := strings.ToLower(prompt)
	wantsOffice := strings.Contains(promptLower, "word") || strings.Contains(promptLower, "office")
	launchIntent := isLaunchIntent(prompt)

	var out []string
	for _, cmd := range cmds {
		if strings.Contains(cmd, " yay") || strings.HasPrefix(cmd, "yay ") || cmd == "yay" {
			continue
		}

		if wantsOffice {
			if rewritten, ok := rewriteInstallPkg(cmd, officePackage); ok {
				out = append(out, rewritten)
				continue
			}
		}

		if launchIntent && needsLaunchWrapper(cmd) {
			out = append(out, "launch "+cmd)
			continue
		}

		out = append(out, cmd)
	}

	if len(out) == 0 {
		return cmds
	}
	return out
}

// rewriteInstallPkg replaces the trailing package argument of an install
// command with newPkg. The second return is false when cmd is not an
// install invocation.
func rewriteInstallPkg(cmd, newPkg string) (string, bool) {
	parts := strings.Fields(cmd)
	if len(parts) < 2 {
		return "", false
	}

	installer := parts[0]
	args := parts[1:]
	if installer == "sudo" && args[0] == "pacman" {
		installer = "sudo pacman"
		args = args[1:]
	} else if installer != "pacman" && installer != "paru" {
		return "", false
	}

	if len(args) == 0 || !strings.HasPrefix(args[0], "-S") {
		return "", false
	}

	rebuilt := append([]string(nil), args...)
	rebuilt[len(rebuilt)-1] = newPkg
	return installer + " " + strings.Join(rebuilt, " "), true
}

// needsLaunchWrapper reports whether cmd is a single bare token with no
// recognized leading program, i.e. likely an app name the model emitted.
func needsLaunchWrapper(cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 || safety.Allowed(fields[0]) {
		return false
	}
	return !strings.Contains(cmd, " ")
}

// rewriteInstallWithResolution re-resolves the package of an official-tool
// install command through the registries and rebuilds it with the resolved
// installer and the original flags. Commands the resolver cannot improve
// pass through unchanged.
func (t *Translator) rewriteInstallWithResolution(ctx context.Context, cmd string, cfg config.ExecConfig) string {
	parts := strings.Fields(strings.TrimSpace(cmd))

	if len(parts) >= 3 && parts[0] == "sudo" && parts[1] == "pacman" && strings.HasPrefix(parts[2], "-S") {
		if rebuilt, ok := t.resolveInstaller(ctx, parts[2:], cfg); ok {
			return rebuilt
		}
	}
	if len(parts) >= 2 && parts[0] == "pacman" && strings.HasPrefix(parts[1], "-S") {
		if rebuilt, ok := t.resolveInstaller(ctx, parts[1:], cfg); ok {
			return rebuilt
		}
	}
	if len(parts) >= 2 && parts[0] == "paru" && strings.HasPrefix(parts[1], "-S") {
		if rebuilt, ok := t.resolveInstaller(ctx, parts[1:], cfg); ok {
			return rebuilt
		}
	}
	return cmd
}

// resolveInstaller rebuilds "<flags...> <pkg>" with the installer the
// resolver picks for pkg.
func (t *Translator) resolveInstaller(ctx context.Context, flagsAndPkg []string, cfg config.ExecConfig) (string, bool) {
	if len(flagsAndPkg) < 2 {
		return "", false
	}
	pkg := flagsAndPkg[len(flagsAndPkg)-1]
	flags := strings.Join(flagsAndPkg[:len(flagsAndPkg)-1], " ")
	return t.buildInstallCommand(ctx, pkg, flags, cfg)
}

func containsLaunch(cmds []string) bool {
	for _, cmd := range cmds {
		if strings.HasPrefix(cmd, "launch ") {
			return true
		}
	}
	return false
}

// extractAppFromInstall pulls a launchable package name out of the command
// list: an existing launch line wins, otherwise the trailing package of an
// install command.
func extractAppFromInstall(cmds []string) (string, bool) {
	for _, cmd := range cmds {
		parts := strings.Fields(cmd)
		switch {
		case len(parts) >= 2 && parts[0] == "launch":
			return parts[1], true
		case len(parts) >= 3 && parts[0] == "sudo" && parts[1] == "pacman" && strings.HasPrefix(parts[2], "-S"):
			return parts[len(parts)-1], true
		case len(parts) >= 2 && (parts[0] == "pacman" || parts[0] == "paru") && strings.HasPrefix(parts[1], "-S"):
			return parts[len(parts)-1], true
		}
	}
	return "", false
}

// isLaunchIntent reports whether the prompt asks to open an application.
func isLaunchIntent(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, verb := range []string{"open", "launch", "start"} {
		if strings.HasPrefix(lower, verb) {
			return true
		}
	}
	return false
}
