// Package settings reads Maven user settings files.
package settings

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"go.trai.ch/mvninspect/internal/adapters/interpolation"
	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/text/encoding/ianaindex"
)

var _ ports.SettingsReader = (*Reader)(nil)

type rawSettings struct {
	XMLName         xml.Name    `xml:"settings"`
	LocalRepository string      `xml:"localRepository"`
	Offline         string      `xml:"offline"`
	Mirrors         []rawMirror `xml:"mirrors>mirror"`
	Servers         []rawServer `xml:"servers>server"`
}

type rawMirror struct {
	ID       string `xml:"id"`
	MirrorOf string `xml:"mirrorOf"`
	URL      string `xml:"url"`
}

type rawServer struct {
	ID       string `xml:"id"`
	Username string `xml:"username"`
	Password string `xml:"password"`
}

// Reader implements ports.SettingsReader.
type Reader struct{}

// NewReader creates a settings Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses the settings file at path. ${env.NAME} and Java system property
// expressions such as ${user.home} are expanded; other expressions are kept verbatim.
func (r *Reader) Read(path string) (*domain.Settings, error) {
	//nolint:gosec // the settings path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsRead.Error()), "path", path)
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader

	var raw rawSettings
	if err := decoder.Decode(&raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsParse.Error()), "path", path)
	}

	expand := interpolation.New().Value
	s := &domain.Settings{
		LocalRepository: expand(raw.LocalRepository),
		Offline:         strings.EqualFold(expand(raw.Offline), "true"),
	}
	for _, m := range raw.Mirrors {
		s.Mirrors = append(s.Mirrors, domain.Mirror{
			ID:       expand(m.ID),
			MirrorOf: expand(m.MirrorOf),
			URL:      expand(m.URL),
		})
	}
	for _, srv := range raw.Servers {
		s.Servers = append(s.Servers, domain.Server{
			ID:       expand(srv.ID),
			Username: expand(srv.Username),
			Password: expand(srv.Password),
		})
	}
	return s, nil
}

func charsetReader(charset string, r io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "unsupported charset"), "charset", charset)
	}
	if enc == nil {
		return r, nil
	}
	return enc.NewDecoder().Reader(r), nil
}
