// Package cas persists dependency resolutions in content addressed files.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResolutionCache = (*Store)(nil)

// Store implements ports.ResolutionCache with one JSON file per request.
type Store struct {
	dir string
}

type entry struct {
	Request      string                      `json:"request"`
	Dependencies []domain.ResolvedDependency `json:"dependencies"`
}

// NewStore creates a Store in the user cache directory.
func NewStore() (*Store, error) {
	return newStoreWithPath(domain.DefaultResolutionCachePath())
}

// newStoreWithPath creates a Store rooted at path (used for testing).
func newStoreWithPath(path string) (*Store, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}
	return &Store{dir: cleanPath}, nil
}

// Get returns the cached resolution of req.
// Returns nil, nil on a miss, for snapshots and when a cached artifact file is gone.
func (s *Store) Get(req domain.ResolutionRequest) ([]domain.ResolvedDependency, error) {
	if isSnapshot(req) {
		return nil, nil
	}

	identity := requestIdentity(req)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(s.filename(identity))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error())
	}
	if e.Request != identity {
		return nil, nil
	}
	for _, d := range e.Dependencies {
		if _, err := os.Stat(d.Path); err != nil {
			return nil, nil
		}
	}
	return e.Dependencies, nil
}

// Put stores the resolution of req. Snapshot requests are ignored.
func (s *Store) Put(req domain.ResolutionRequest, deps []domain.ResolvedDependency) error {
	if isSnapshot(req) {
		return nil
	}

	identity := requestIdentity(req)
	data, err := json.Marshal(entry{Request: identity, Dependencies: deps})
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(s.filename(identity), data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	return nil
}

func (s *Store) filename(identity string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(identity), 16)+".json")
}

// requestIdentity is everything that can change the outcome of a resolution.
func requestIdentity(req domain.ResolutionRequest) string {
	exclusions := make([]string, len(req.Exclusions))
	for i, e := range req.Exclusions {
		exclusions[i] = e.GroupID + ":" + e.ArtifactID
	}
	slices.Sort(exclusions)

	return strings.Join([]string{
		req.Coordinate,
		req.Type,
		req.Classifier,
		string(req.Scope),
		strings.Join(exclusions, ","),
		req.Session.Mirror.URL,
		req.Session.LocalRepository,
	}, "|")
}

func isSnapshot(req domain.ResolutionRequest) bool {
	return strings.HasSuffix(req.Coordinate, domain.SnapshotSuffix)
}
