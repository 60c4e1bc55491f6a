package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/agentx-labs/productor/internal/manifest"
	"github.com/agentx-labs/productor/internal/registry"
)

var (
	printer = message.NewPrinter(language.English)

	headerStyle = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderDiagnostics writes one styled line per diagnostic.
func renderDiagnostics(w io.Writer, diags []registry.Diagnostic) {
	for _, d := range diags {
		badge := warnStyle.Render("! " + string(d.Severity))
		if d.Severity == registry.SeverityError {
			badge = errorStyle.Render("✗ " + string(d.Severity))
		}

		var sb strings.Builder
		sb.WriteString(badge)
		sb.WriteString(" ")
		sb.WriteString(d.Message)
		sb.WriteString(" ")
		sb.WriteString(dimStyle.Render("[" + d.Code + "]"))
		if d.Path != "" {
			sb.WriteString("\n    ")
			sb.WriteString(dimStyle.Render(d.Path))
		}
		if d.Cause != nil {
			sb.WriteString("\n    ")
			sb.WriteString(d.Cause.Error())
		}
		fmt.Fprintln(w, sb.String())
	}
}

// renderImplementation describes a single lookup result.
func renderImplementation(w io.Writer, impl registry.Implementation[string, any]) {
	if impl.Fallback {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("default:"), impl.Type)
		return
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("key: "), impl.Key)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("type:"), impl.Type)
	fmt.Fprintf(w, "%s %s %s\n", labelStyle.Render("unit:"), impl.Unit.ID, dimStyle.Render("("+impl.Unit.Path+")"))
}

// renderIssues writes manifest validation issues.
func renderIssues(w io.Writer, path string, issues []manifest.ValidationIssue) {
	fmt.Fprintln(w, errorStyle.Render(printer.Sprintf("✗ %s: %d issue(s)", path, len(issues))))
	for _, issue := range issues {
		loc := issue.Path
		if loc == "" {
			loc = "/"
		}
		fmt.Fprintf(w, "  %s %s %s\n", labelStyle.Render(loc), issue.Message, dimStyle.Render("("+issue.Keyword+")"))
	}
}
