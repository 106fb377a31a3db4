package ports

import (
	"context"

	"go.trai.ch/mvninspect/internal/core/domain"
)

// DescriptorReader turns a project descriptor file into its effective model.
//
//go:generate mockgen -source=descriptor.go -destination=mocks/mock_descriptor.go -package=mocks
type DescriptorReader interface {
	// Read parses the descriptor at path. Parents and imported BOMs that are not
	// on disk are fetched through the session.
	Read(ctx context.Context, path string, session domain.RepositorySession) (*domain.Project, error)

	// Model returns the effective model of a POM stored in the repository.
	Model(ctx context.Context, session domain.RepositorySession, coordinate domain.Coordinate) (*domain.Project, error)
}
