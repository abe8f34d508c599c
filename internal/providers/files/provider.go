// Package files provides the filesystem result provider. It walks the
// configured root directories and matches entry names against the query.
package files

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/quickcast-app/quickcast/internal/core/domain"
	"github.com/quickcast-app/quickcast/internal/core/ports/driven"
	"github.com/quickcast-app/quickcast/internal/logger"
	"github.com/quickcast-app/quickcast/internal/match"
)

// ProviderID identifies this provider in the registry.
const ProviderID = "files"

const (
	// maxResults bounds one generation's output.
	maxResults = 40

	// maxDepth bounds the walk below each root.
	maxDepth = 4

	// statsPerSecond throttles filesystem operations so a broad walk
	// does not saturate disk I/O while the user is still typing.
	statsPerSecond = 2000
	statBurst      = 200
)

// Ensure Provider implements the interface.
var _ driven.Provider = (*Provider)(nil)

// Provider searches file and directory names under configured roots.
type Provider struct {
	roots   []string
	limiter *rate.Limiter
}

// New creates a files provider over the given root directories.
func New(roots []string) *Provider {
	return &Provider{
		roots:   roots,
		limiter: rate.NewLimiter(rate.Limit(statsPerSecond), statBurst),
	}
}

// ID returns the provider identifier.
func (p *Provider) ID() string { return ProviderID }

// Search walks the roots and streams matching entries as it finds them.
// The walk stops at the result cap or when ctx is cancelled.
func (p *Provider) Search(ctx context.Context, query string) (<-chan domain.Result, <-chan error) {
	out := make(chan domain.Result)
	errs := make(chan error, 1)

	if strings.TrimSpace(query) == "" {
		close(out)
		close(errs)
		return out, errs
	}

	go func() {
		defer close(out)
		defer close(errs)

		emitted := 0
		for _, root := range p.roots {
			if err := p.walkRoot(ctx, root, query, out, &emitted); err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Debug("files: walk %s: %v", root, err)
			}
			if emitted >= maxResults {
				return
			}
		}
	}()

	return out, errs
}

// walkRoot walks one root, emitting matches until the cap is reached.
func (p *Provider) walkRoot(
	ctx context.Context,
	root, query string,
	out chan<- domain.Result,
	emitted *int,
) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if strings.HasPrefix(name, ".") && path != root {
				return fs.SkipDir
			}
			if depth(root, path) >= maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		score := match.Score(query, name)
		if score == 0 {
			return nil
		}

		result := domain.Result{
			ID:       path,
			Title:    name,
			Subtitle: filepath.Dir(path),
			Category: domain.CategoryFile,
			Action:   domain.OpenFile(path),
			Score:    score,
		}
		select {
		case out <- result:
		case <-ctx.Done():
			return ctx.Err()
		}

		*emitted++
		if *emitted >= maxResults {
			return fs.SkipAll
		}
		return nil
	})
}

// depth returns how many levels path sits below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(filepath.Separator)))
}
