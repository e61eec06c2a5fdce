// Package resolver classifies a package name as living in the official
// repository or the AUR by querying the two public registries. Lookups can
// be slow, rate-limited or offline, so failures degrade toward Unknown
// instead of propagating, and a pure heuristic covers the Unknown case.
package resolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"archassist/internal/config"
)

// Origin is the resolver's classification of a package name.
type Origin int

const (
	// OriginRepo means the official repository search returned results.
	OriginRepo Origin = iota
	// OriginAur means the AUR info service knows the package.
	OriginAur
	// OriginUnknown means neither registry recognized the name.
	OriginUnknown
	// OriginOffline means resolution was not attempted because network
	// use is forbidden.
	OriginOffline
)

func (o Origin) String() string {
	switch o {
	case OriginRepo:
		return "repo"
	case OriginAur:
		return "aur"
	case OriginUnknown:
		return "unknown"
	default:
		return "offline"
	}
}

const (
	defaultRepoSearchURL = "https://archlinux.org/packages/search/json/"
	defaultAurRPCURL     = "https://aur.archlinux.org/rpc/"
)

// Resolver queries the package registries.
type Resolver struct {
	httpClient    *http.Client
	repoSearchURL string
	aurRPCURL     string
	log           *zap.Logger
}

// New creates a Resolver against the public registries.
func New(log *zap.Logger) *Resolver {
	return NewWithURLs(log, defaultRepoSearchURL, defaultAurRPCURL)
}

// NewWithURLs creates a Resolver against explicit registry endpoints.
// Tests point these at local fakes.
func NewWithURLs(log *zap.Logger, repoSearchURL, aurRPCURL string) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		httpClient:    &http.Client{},
		repoSearchURL: repoSearchURL,
		aurRPCURL:     aurRPCURL,
		log:           log,
	}
}

// Resolve classifies pkg. Offline config short-circuits before any network
// access. Registry failures of any kind count as "not found".
func (r *Resolver) Resolve(ctx context.Context, pkg string, cfg config.ExecConfig) Origin {
	if cfg.Offline {
		return OriginOffline
	}
	if r.inArchRepo(ctx, pkg) {
		return OriginRepo
	}
	if r.inAUR(ctx, pkg) {
		return OriginAur
	}
	return OriginUnknown
}

type archSearchResponse struct {
	Results []json.RawMessage `json:"results"`
}

func (r *Resolver) inArchRepo(ctx context.Context, pkg string) bool {
	u := r.repoSearchURL + "?q=" + url.QueryEscape(pkg)
	var parsed archSearchResponse
	if !r.getJSON(ctx, u, &parsed) {
		return false
	}
	return len(parsed.Results) > 0
}

type aurInfoResponse struct {
	ResultCount int `json:"resultcount"`
}

func (r *Resolver) inAUR(ctx context.Context, pkg string) bool {
	u := r.aurRPCURL + "?v=5&type=info&arg=" + url.QueryEscape(pkg)
	var parsed aurInfoResponse
	if !r.getJSON(ctx, u, &parsed) {
		return false
	}
	return parsed.ResultCount > 0
}

func (r *Resolver) getJSON(ctx context.Context, u string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.Debug("registry lookup failed", zap.String("url", u), zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		r.log.Debug("registry lookup non-OK", zap.String("url", u), zap.Int("status", resp.StatusCode))
		return false
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		r.log.Debug("registry response malformed", zap.String("url", u), zap.Error(err))
		return false
	}
	return true
}
