// Package pom reads Maven project descriptors into their effective model.
package pom

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/text/encoding/ianaindex"
)

type rawProject struct {
	XMLName              xml.Name        `xml:"project"`
	Parent               *rawParent      `xml:"parent"`
	GroupID              string          `xml:"groupId"`
	ArtifactID           string          `xml:"artifactId"`
	Version              string          `xml:"version"`
	Packaging            string          `xml:"packaging"`
	Name                 string          `xml:"name"`
	Modules              []string        `xml:"modules>module"`
	Properties           rawProperties   `xml:"properties"`
	Dependencies         []rawDependency `xml:"dependencies>dependency"`
	DependencyManagement []rawDependency `xml:"dependencyManagement>dependencies>dependency"`
	Build                rawBuild        `xml:"build"`
}

type rawParent struct {
	GroupID      string  `xml:"groupId"`
	ArtifactID   string  `xml:"artifactId"`
	Version      string  `xml:"version"`
	RelativePath *string `xml:"relativePath"`
}

type rawDependency struct {
	GroupID    string         `xml:"groupId"`
	ArtifactID string         `xml:"artifactId"`
	Version    string         `xml:"version"`
	Type       string         `xml:"type"`
	Classifier string         `xml:"classifier"`
	Scope      string         `xml:"scope"`
	Optional   string         `xml:"optional"`
	SystemPath string         `xml:"systemPath"`
	Exclusions []rawExclusion `xml:"exclusions>exclusion"`
}

type rawExclusion struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

type rawBuild struct {
	Directory           string      `xml:"directory"`
	SourceDirectory     string      `xml:"sourceDirectory"`
	TestSourceDirectory string      `xml:"testSourceDirectory"`
	OutputDirectory     string      `xml:"outputDirectory"`
	TestOutputDirectory string      `xml:"testOutputDirectory"`
	Plugins             []rawPlugin `xml:"plugins>plugin"`
	PluginManagement    []rawPlugin `xml:"pluginManagement>plugins>plugin"`
}

type rawPlugin struct {
	GroupID       string         `xml:"groupId"`
	ArtifactID    string         `xml:"artifactId"`
	Version       string         `xml:"version"`
	Configuration *rawNode       `xml:"configuration"`
	Executions    []rawExecution `xml:"executions>execution"`
}

type rawExecution struct {
	ID            string   `xml:"id"`
	Phase         string   `xml:"phase"`
	Goals         []string `xml:"goals>goal"`
	Configuration *rawNode `xml:"configuration"`
}

// rawNode keeps arbitrary plugin configuration as a tree.
type rawNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []rawNode `xml:",any"`
}

// rawProperties decodes <properties> into a map keyed by element name.
type rawProperties map[string]string

func (p *rawProperties) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	props := make(map[string]string)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			props[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			*p = props
			return nil
		}
	}
}

func (p rawPlugin) key() string {
	g := p.GroupID
	if g == "" {
		g = domain.DefaultPluginGroupID
	}
	return g + ":" + p.ArtifactID
}

func (d rawDependency) key() string {
	typ := d.Type
	if typ == "" {
		typ = domain.DefaultExtension
	}
	return d.GroupID + ":" + d.ArtifactID + ":" + typ + ":" + d.Classifier
}

func (e rawExecution) id() string {
	if e.ID == "" {
		return "default"
	}
	return e.ID
}

// decodeFile reads and decodes the descriptor at path.
func decodeFile(path string) (*rawProject, error) {
	//nolint:gosec // descriptor paths come from the command line and module declarations
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDescriptorRead.Error()), "path", path)
	}

	raw, err := decode(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDescriptorParse.Error()), "path", path)
	}
	return raw, nil
}

// decode parses descriptor XML, honouring the declared charset.
func decode(data []byte) (*rawProject, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = func(charset string, r io.Reader) (io.Reader, error) {
		enc, err := ianaindex.IANA.Encoding(charset)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "unsupported charset"), "charset", charset)
		}
		if enc == nil {
			// UTF-8 and its subsets have no decoder.
			return r, nil
		}
		return enc.NewDecoder().Reader(r), nil
	}

	var raw rawProject
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	return &raw, nil
}
