package domain

import "strings"

// CentralRepositoryID is the id of the repository every project implicitly uses.
const CentralRepositoryID = "central"

// DefaultMirrorURL is the Maven Central base URL.
const DefaultMirrorURL = "https://repo.maven.apache.org/maven2"

// Mirror is an alternate location for remote artifacts.
type Mirror struct {
	ID       string
	MirrorOf string
	URL      string
}

// DefaultMirror is used when the settings file declares no mirror.
func DefaultMirror() Mirror {
	return Mirror{ID: CentralRepositoryID, MirrorOf: "*", URL: DefaultMirrorURL}
}

// AppliesTo reports whether the mirror serves the repository with the given id.
// It understands "*", "external:*", comma separated lists and "!id" exclusions.
func (m Mirror) AppliesTo(repoID string) bool {
	matched := false
	for _, raw := range strings.Split(m.MirrorOf, ",") {
		pattern := strings.TrimSpace(raw)
		switch {
		case pattern == "":
		case strings.HasPrefix(pattern, "!"):
			if pattern[1:] == repoID {
				return false
			}
		case pattern == "*", pattern == "external:*", pattern == repoID:
			matched = true
		}
	}
	return matched
}

// Server holds credentials for a repository or mirror id.
type Server struct {
	ID       string
	Username string
	Password string
}

// Settings is the subset of a Maven user settings file this tool consumes.
type Settings struct {
	LocalRepository string
	Offline         bool
	Mirrors         []Mirror
	Servers         []Server
}

// SelectMirror returns the first mirror applicable to central, then the
// first declared mirror, then DefaultMirror.
func (s *Settings) SelectMirror() Mirror {
	for _, m := range s.Mirrors {
		if m.AppliesTo(CentralRepositoryID) {
			return m
		}
	}
	if len(s.Mirrors) > 0 {
		return s.Mirrors[0]
	}
	return DefaultMirror()
}

// Server returns the server entry with the given id.
func (s *Settings) Server(id string) (Server, bool) {
	for _, srv := range s.Servers {
		if srv.ID == id {
			return srv, true
		}
	}
	return Server{}, false
}

// Credentials authenticate against a mirror.
type Credentials struct {
	Username string
	Password string
}

// RepositorySession carries everything needed to reach artifacts during one run.
type RepositorySession struct {
	LocalRepository string
	Mirror          Mirror
	Offline         bool
	Credentials     *Credentials
}

// NewRepositorySession builds the session for the given settings. A non-empty
// localRepository overrides the one from the settings file.
func NewRepositorySession(s *Settings, localRepository string, offline bool) RepositorySession {
	mirror := s.SelectMirror()
	session := RepositorySession{
		LocalRepository: s.LocalRepository,
		Mirror:          mirror,
		Offline:         offline || s.Offline,
	}
	if localRepository != "" {
		session.LocalRepository = localRepository
	}
	if session.LocalRepository == "" {
		session.LocalRepository = DefaultLocalRepositoryPath()
	}
	if srv, ok := s.Server(mirror.ID); ok && srv.Username != "" {
		session.Credentials = &Credentials{Username: srv.Username, Password: srv.Password}
	}
	return session
}
