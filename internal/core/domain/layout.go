package domain

import (
	"os"
	"path/filepath"
)

const (
	// PomFileName is the conventional name of a project descriptor.
	PomFileName = "pom.xml"

	// MavenHomeEnv designates the default Maven installation directory.
	MavenHomeEnv = "M2_HOME"

	// SettingsDirName is the directory below the Maven home holding settings.xml.
	SettingsDirName = "conf"

	// SettingsFileName is the name of the Maven settings file.
	SettingsFileName = "settings.xml"

	// UserMavenDirName is the per-user Maven directory below the home directory.
	UserMavenDirName = ".m2"

	// RepositoryDirName is the name of the local repository directory below ~/.m2.
	RepositoryDirName = "repository"

	// CacheDirName is the directory below the user cache directory owned by mvninspect.
	CacheDirName = "mvninspect"

	// ResolutionsDirName holds persisted resolution results.
	ResolutionsDirName = "resolutions"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultSettingsPath returns <mavenHome>/conf/settings.xml.
func DefaultSettingsPath(mavenHome string) string {
	return filepath.Join(mavenHome, SettingsDirName, SettingsFileName)
}

// DefaultLocalRepositoryPath returns ~/.m2/repository.
// It falls back to a relative .m2/repository when the home directory is unknown.
func DefaultLocalRepositoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(UserMavenDirName, RepositoryDirName)
	}
	return filepath.Join(home, UserMavenDirName, RepositoryDirName)
}

// DefaultResolutionCachePath returns the directory for persisted resolution results.
// It joins the user cache directory, mvninspect and resolutions.
func DefaultResolutionCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, CacheDirName, ResolutionsDirName)
}
