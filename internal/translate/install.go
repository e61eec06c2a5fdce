package translate

import (
	"context"
	"strings"

	"archassist/internal/config"
	"archassist/internal/resolver"
)

// installerFor picks the package tool from config flags and the package
// name alone, with no network access.
func installerFor(pkg string, cfg config.ExecConfig) string {
	switch {
	case cfg.PreferParu || strings.HasSuffix(pkg, "-bin"):
		return "paru"
	case cfg.NoSudo:
		return "pacman"
	default:
		return "sudo pacman"
	}
}

// officialInstaller picks the official tool, honoring the no-sudo flag.
func officialInstaller(cfg config.ExecConfig) string {
	if cfg.NoSudo {
		return "pacman"
	}
	return "sudo pacman"
}

// applyPkgFlags appends --noconfirm to pacman/paru actions when the yes
// flag is set and the command does not already carry it.
func applyPkgFlags(cmd string, cfg config.ExecConfig) string {
	if cfg.Yes &&
		(strings.HasPrefix(cmd, "sudo pacman ") || strings.HasPrefix(cmd, "pacman ") || strings.HasPrefix(cmd, "paru ")) &&
		!strings.Contains(cmd, "--noconfirm") {
		return cmd + " --noconfirm"
	}
	return cmd
}

// installCommandFor builds an install command from an already-decided
// installer.
func installCommandFor(installer, pkg string, cfg config.ExecConfig) string {
	return applyPkgFlags(installer+" -S --needed "+pkg, cfg)
}

// buildInstallCommand resolves pkg through the registries and builds the
// matching install command. The second return is false when resolution was
// skipped entirely (offline).
func (t *Translator) buildInstallCommand(ctx context.Context, pkg, flags string, cfg config.ExecConfig) (string, bool) {
	switch t.res.Resolve(ctx, pkg, cfg) {
	case resolver.OriginRepo:
		return applyPkgFlags(officialInstaller(cfg)+" "+flags+" "+pkg, cfg), true
	case resolver.OriginAur:
		return applyPkgFlags("paru "+flags+" "+pkg, cfg), true
	case resolver.OriginUnknown:
		if resolver.LooksLikeAur(pkg) {
			return applyPkgFlags("paru "+flags+" "+pkg, cfg), true
		}
		return applyPkgFlags(officialInstaller(cfg)+" "+flags+" "+pkg, cfg), true
	default:
		return "", false
	}
}
