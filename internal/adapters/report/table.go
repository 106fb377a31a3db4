package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"go.trai.ch/mvninspect/internal/core/domain"
	"go.trai.ch/mvninspect/internal/ui/output"
	"go.trai.ch/mvninspect/internal/ui/style"
)

func writeTable(w io.Writer, report *domain.Report) error {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	title := style.Title(r)
	faint := style.Faint(r)

	var b strings.Builder
	for i := range report.Modules {
		m := &report.Modules[i]
		if i > 0 {
			b.WriteString("\n")
		}
		heading := style.Module + " " + m.ProjectID
		if m.Name != "" {
			heading += " (" + m.Name + ")"
		}
		b.WriteString(title.Render(heading) + "\n")

		field := func(name, value string) {
			b.WriteString("  " + faint.Render(fmt.Sprintf("%-12s", name)) + " " + value + "\n")
		}
		field("base dir", m.BaseDir)
		field("source", m.Source)
		field("encoding", m.Encoding)
		for _, p := range m.SourcePaths {
			field("sources", p)
		}
		field("test sources", m.TestSourcePath)
		field("output", m.OutputPath)
		field("test output", m.TestOutputPath)

		if len(m.Dependencies) == 0 {
			field("dependencies", "none")
			continue
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		b.Reset()
		if err := dependencyTable(w, m.Dependencies); err != nil {
			return err
		}
	}

	if len(report.Diagnostics) > 0 {
		b.WriteString("\n" + title.Render(style.Warning+" diagnostics") + "\n")
		for _, d := range report.Diagnostics {
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", faint.Render(string(d.Kind)), d.Module, d.Message))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func dependencyTable(w io.Writer, deps []domain.ResolvedDependency) error {
	table := tablewriter.NewTable(
		w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleLight),
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Fail},
			},
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)

	table.Header([]string{"group", "artifact", "version", "scope", "path"})
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{d.GroupID, d.ArtifactID, d.Version, string(d.Scope), d.Path})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}
