package driven

import (
	"context"

	"github.com/vimed-graphrag/vimed-cli/internal/core/domain"
)

// ArtifactLoader fetches the graph visualization document.
// Every call must go to the origin; a new attempt never reuses a cached copy.
type ArtifactLoader interface {
	Load(ctx context.Context, url string, attempt int) (*domain.Artifact, error)
}

// Opener hands a local path or URL to the operating system.
type Opener interface {
	Open(target string) error
}
