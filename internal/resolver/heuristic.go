package resolver

import "strings"

// aurSuffixes mark VCS and prebuilt packaging conventions that only exist
// in the AUR.
var aurSuffixes = []string{"-bin", "-git", "-svn", "-hg"}

// commonAurPackages lists well-known AUR-only packages so that Unknown
// resolutions still produce the right installer.
var commonAurPackages = map[string]bool{
	"google-chrome":             true,
	"brave-bin":                 true,
	"microsoft-edge-stable-bin": true,
	"visual-studio-code-bin":    true,
	"wps-office":                true,
	"slack-desktop":             true,
	"zoom":                      true,
	"spotify":                   true,
}

// LooksLikeAur guesses whether pkg is an AUR package without touching the
// network. Used wherever Unknown must still yield an installer choice.
func LooksLikeAur(pkg string) bool {
	for _, suffix := range aurSuffixes {
		if strings.HasSuffix(pkg, suffix) {
			return true
		}
	}
	return commonAurPackages[pkg]
}
