package domain

import (
	"path"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// DefaultExtension is the file extension of an artifact without an explicit type.
	DefaultExtension = "jar"
	// PomExtension is the file extension of project descriptors in a repository.
	PomExtension = "pom"
	// SnapshotSuffix marks a mutable version.
	SnapshotSuffix = "-SNAPSHOT"
)

// Coordinate identifies a module or dependency by group, artifact and version.
type Coordinate struct {
	GroupID    string `json:"groupId" yaml:"groupId"`
	ArtifactID string `json:"artifactId" yaml:"artifactId"`
	Version    string `json:"version" yaml:"version"`
}

// String returns the colon-joined group:artifact:version form.
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// Key returns the versionless group:artifact form.
func (c Coordinate) Key() string {
	return c.GroupID + ":" + c.ArtifactID
}

// IsSnapshot reports whether the version is a snapshot.
func (c Coordinate) IsSnapshot() bool {
	return strings.HasSuffix(c.Version, SnapshotSuffix)
}

// IsZero reports whether no part of the coordinate is set.
func (c Coordinate) IsZero() bool {
	return c.GroupID == "" && c.ArtifactID == "" && c.Version == ""
}

// Artifact is a coordinate narrowed to a single file in a repository.
type Artifact struct {
	Coordinate
	Extension  string
	Classifier string
}

// NewArtifact returns the artifact for a dependency type and classifier,
// mapping packaging types to their file extension.
func NewArtifact(c Coordinate, typ, classifier string) Artifact {
	ext := DefaultExtension
	switch typ {
	case "", "jar", "maven-plugin", "ejb", "bundle", "ejb-client", "java-source", "javadoc":
	case "test-jar":
		if classifier == "" {
			classifier = "tests"
		}
	default:
		ext = typ
	}
	return Artifact{Coordinate: c, Extension: ext, Classifier: classifier}
}

// ParseArtifact parses group:artifact:version, group:artifact:extension:version
// and group:artifact:extension:classifier:version.
func ParseArtifact(s string) (Artifact, error) {
	parts := strings.Split(s, ":")
	for _, p := range parts {
		if p == "" {
			return Artifact{}, zerr.With(ErrInvalidCoordinate, "coordinate", s)
		}
	}

	switch len(parts) {
	case 3:
		return Artifact{
			Coordinate: Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]},
			Extension:  DefaultExtension,
		}, nil
	case 4:
		return Artifact{
			Coordinate: Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[3]},
			Extension:  parts[2],
		}, nil
	case 5:
		return Artifact{
			Coordinate: Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[4]},
			Extension:  parts[2],
			Classifier: parts[3],
		}, nil
	default:
		return Artifact{}, zerr.With(ErrInvalidCoordinate, "coordinate", s)
	}
}

// POM returns the descriptor artifact of the same coordinate.
func (a Artifact) POM() Artifact {
	return Artifact{Coordinate: a.Coordinate, Extension: PomExtension}
}

// RepositoryPath returns the slash separated path in Maven 2 repository layout,
// e.g. org/acme/lib/1.0/lib-1.0-tests.jar.
func (a Artifact) RepositoryPath() string {
	ext := a.Extension
	if ext == "" {
		ext = DefaultExtension
	}
	name := a.ArtifactID + "-" + a.Version
	if a.Classifier != "" {
		name += "-" + a.Classifier
	}
	return path.Join(strings.ReplaceAll(a.GroupID, ".", "/"), a.ArtifactID, a.Version, name+"."+ext)
}

// String returns the coordinate with extension and classifier when they are not defaults.
func (a Artifact) String() string {
	switch {
	case a.Classifier != "":
		return a.GroupID + ":" + a.ArtifactID + ":" + a.Extension + ":" + a.Classifier + ":" + a.Version
	case a.Extension != "" && a.Extension != DefaultExtension:
		return a.GroupID + ":" + a.ArtifactID + ":" + a.Extension + ":" + a.Version
	default:
		return a.Coordinate.String()
	}
}
