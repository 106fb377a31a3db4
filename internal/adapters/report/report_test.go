package report_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mvninspect/internal/adapters/report"
	"go.trai.ch/mvninspect/internal/core/domain"
	"gopkg.in/yaml.v3"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Modules: []domain.ModuleOptions{
			{
				ProjectID:      "org.acme:core:1.0",
				Name:           "Core",
				BaseDir:        "/work/core",
				Source:         "17",
				Encoding:       "UTF-8",
				SourcePaths:    []string{"/work/core/src/main/java", "/work/core/target/generated-sources/antlr"},
				TestSourcePath: "/work/core/src/test/java",
				OutputPath:     "/work/core/target/classes",
				TestOutputPath: "/work/core/target/test-classes",
				Dependencies: []domain.ResolvedDependency{
					{
						Coordinate: domain.Coordinate{GroupID: "org.slf4j", ArtifactID: "slf4j-api", Version: "2.0.9"},
						Scope:      domain.ScopeCompile,
						Path:       "/repo/org/slf4j/slf4j-api/2.0.9/slf4j-api-2.0.9.jar",
					},
				},
			},
			{
				ProjectID:      "org.acme:web:1.0",
				BaseDir:        "/work/web",
				Source:         "1.8",
				Encoding:       "UTF-8",
				SourcePaths:    []string{"/work/web/src/main/java"},
				TestSourcePath: "/work/web/src/test/java",
				OutputPath:     "/work/web/target/classes",
				TestOutputPath: "/work/web/target/test-classes",
				Dependencies:   []domain.ResolvedDependency{},
			},
		},
		Diagnostics: []domain.Diagnostic{
			{
				Kind:    domain.DiagSubmoduleMissing,
				Module:  "org.acme:parent:1.0",
				Subject: "/work/gone/pom.xml",
				Message: "there is no pom.xml in module gone, skipping",
			},
		},
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, domain.FormatJSON, sampleReport()))

	g := goldie.New(t)
	g.Assert(t, "json_lines", buf.Bytes())
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, domain.FormatYAML, sampleReport()))

	var decoded domain.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	want := sampleReport()
	assert.Equal(t, want.Modules[0].Dependencies, decoded.Modules[0].Dependencies)
	assert.Equal(t, want.Diagnostics, decoded.Diagnostics)
	assert.Contains(t, buf.String(), "groupId: org.slf4j")
}

func TestWrite_Table(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, domain.FormatTable, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "■ org.acme:core:1.0 (Core)")
	assert.Contains(t, out, "/work/core/target/generated-sources/antlr")
	assert.Contains(t, out, "slf4j-api-2.0.9.jar")
	assert.Contains(t, out, "■ org.acme:web:1.0\n")
	assert.Contains(t, out, "dependencies none")
	assert.Contains(t, out, "submodule-missing org.acme:parent:1.0: there is no pom.xml in module gone, skipping")
	assert.NotContains(t, out, "\x1b[")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := report.Write(&bytes.Buffer{}, domain.FormatAuto, sampleReport())
	assert.ErrorContains(t, err, domain.ErrUnknownFormat.Error())
}
