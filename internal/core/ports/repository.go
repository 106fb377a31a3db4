package ports

import (
	"context"

	"go.trai.ch/mvninspect/internal/core/domain"
)

// ArtifactFetcher makes repository artifacts available on the local disk.
//
//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type ArtifactFetcher interface {
	// Fetch returns the local path of the artifact, downloading it from the
	// session mirror into the local repository when needed.
	Fetch(ctx context.Context, session domain.RepositorySession, artifact domain.Artifact) (string, error)
}
