package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidArguments is the parent of every command line configuration error.
	ErrInvalidArguments = zerr.New("invalid arguments")

	// ErrMissingDescriptor is returned when no --maven-script was given.
	ErrMissingDescriptor = zerr.New("--maven-script is required")

	// ErrDescriptorNotFound is returned when the project descriptor does not exist.
	ErrDescriptorNotFound = zerr.New("project descriptor does not exist")

	// ErrDescriptorNotFile is returned when the project descriptor path is not a regular file.
	ErrDescriptorNotFile = zerr.New("project descriptor is not a regular file")

	// ErrDescriptorExtension is returned when the project descriptor has an unexpected extension.
	ErrDescriptorExtension = zerr.New("project descriptor must end with .xml or .pom")

	// ErrMavenHomeUnresolved is returned when neither --maven-home nor M2_HOME point at a directory.
	ErrMavenHomeUnresolved = zerr.New("maven home is not set, use --maven-home or M2_HOME")

	// ErrSettingsNotFound is returned when no user settings file can be located.
	ErrSettingsNotFound = zerr.New("user settings file does not exist")

	// ErrUnknownFormat is returned for an unsupported --format value.
	ErrUnknownFormat = zerr.New("unknown output format, expected auto, json, yaml or table")

	// ErrRootDescriptor is returned when the top level project descriptor cannot be read.
	ErrRootDescriptor = zerr.New("failed to read root project descriptor")

	// ErrDescriptorRead is returned when a project descriptor cannot be read from disk.
	ErrDescriptorRead = zerr.New("failed to read project descriptor")

	// ErrDescriptorParse is returned when a project descriptor is not valid XML.
	ErrDescriptorParse = zerr.New("failed to parse project descriptor")

	// ErrDescriptorInvalid is returned when a parsed descriptor lacks its identity.
	ErrDescriptorInvalid = zerr.New("project descriptor is missing groupId, artifactId or version")

	// ErrParentResolution is returned when a parent descriptor cannot be located.
	ErrParentResolution = zerr.New("failed to resolve parent descriptor")

	// ErrParentCycle is returned when descriptors inherit from each other in a loop.
	ErrParentCycle = zerr.New("parent descriptor cycle detected")

	// ErrImportResolution is returned when an imported dependency management POM cannot be read.
	ErrImportResolution = zerr.New("failed to import dependency management")

	// ErrInvalidCoordinate is returned when a coordinate string cannot be parsed.
	ErrInvalidCoordinate = zerr.New("invalid coordinate, expected group:artifact[:extension[:classifier]]:version")

	// ErrUnsupportedVersion is returned for version ranges and unresolved version expressions.
	ErrUnsupportedVersion = zerr.New("unsupported dependency version")

	// ErrMissingVersion is returned when a dependency has no version after dependency management.
	ErrMissingVersion = zerr.New("dependency version is missing")

	// ErrArtifactNotFound is returned when an artifact exists neither locally nor on the mirror.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrArtifactDownload is returned when fetching an artifact from the mirror fails.
	ErrArtifactDownload = zerr.New("failed to download artifact")

	// ErrArtifactOffline is returned when an artifact is missing locally in an offline session.
	ErrArtifactOffline = zerr.New("artifact is not in the local repository and the session is offline")

	// ErrLocalRepositoryWrite is returned when an artifact cannot be stored in the local repository.
	ErrLocalRepositoryWrite = zerr.New("failed to write to local repository")

	// ErrDependencyResolution is returned when a dependency cannot be resolved.
	ErrDependencyResolution = zerr.New("failed to resolve dependency")

	// ErrSettingsRead is returned when the settings file cannot be read.
	ErrSettingsRead = zerr.New("failed to read settings file")

	// ErrSettingsParse is returned when the settings file is not valid XML.
	ErrSettingsParse = zerr.New("failed to parse settings file")

	// ErrCacheCreateFailed is returned when the resolution cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create resolution cache directory")

	// ErrCacheReadFailed is returned when a resolution cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read resolution cache")

	// ErrCacheWriteFailed is returned when a resolution cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write resolution cache")

	// ErrCacheMarshalFailed is returned when a resolution cache entry cannot be encoded.
	ErrCacheMarshalFailed = zerr.New("failed to marshal resolution cache entry")

	// ErrCacheUnmarshalFailed is returned when a resolution cache entry cannot be decoded.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal resolution cache entry")

	// ErrReportWriteFailed is returned when the report cannot be written.
	ErrReportWriteFailed = zerr.New("failed to write report")

	// ErrWatchFailed is returned when descriptor watching cannot be started.
	ErrWatchFailed = zerr.New("failed to watch project descriptors")
)
