package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// detailWidth is the column at which details are wrapped.
const detailWidth = 70

// term renders styled output for stderr.
var term = lipgloss.NewRenderer(os.Stderr)

// DisableColors turns off styling in Format and PrintError.
func DisableColors() {
	term.SetColorProfile(termenv.Ascii)
}

// EnableColors restores styling detected from the terminal.
func EnableColors() {
	term = lipgloss.NewRenderer(os.Stderr)
}

type palette struct {
	errTag, code, path, marker, rule, hint, muted, link lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	return palette{
		errTag: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		code:   r.NewStyle().Bold(true),
		path:   r.NewStyle().Foreground(lipgloss.Color("6")),
		marker: r.NewStyle().Foreground(lipgloss.Color("1")),
		rule:   r.NewStyle().Foreground(lipgloss.Color("8")),
		hint:   r.NewStyle().Foreground(lipgloss.Color("6")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
		link:   r.NewStyle().Foreground(lipgloss.Color("4")).Underline(true),
	}
}

// Format renders the error for a terminal: header, location with the
// offending config lines, detail, hint and documentation link.
func (e *Error) Format() string {
	p := newPalette(term)
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(p.errTag.Render("ERROR") + " " + p.code.Render(e.Code+":") + " " + e.Message)
	} else {
		b.WriteString(p.errTag.Render("ERROR:") + " " + e.Message)
	}
	b.WriteString("\n\n")

	if e.Location != nil {
		fmt.Fprintf(&b, "  %s\n\n", p.path.Render(e.Location.String()))
		if len(e.Context) > 0 {
			e.writeContext(&b, p)
			b.WriteString("\n")
		}
	}

	if lines := wrapText(e.Detail, detailWidth); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", p.hint.Render("Hint: "), e.Suggestion)
	}

	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", p.muted.Render("Learn more: "), p.link.Render(e.DocURL))
	}

	return b.String()
}

// writeContext prints the surrounding lines, marking the error line and
// column.
func (e *Error) writeContext(b *strings.Builder, p palette) {
	first := e.Location.Line - len(e.Context)/2
	bar := p.rule.Render(" │ ")
	for i, line := range e.Context {
		n := first + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d%s%s\n", n, bar, line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d%s%s\n", p.marker.Render("→ "), n, bar, line)
		if e.Location.Column > 0 {
			fmt.Fprintf(b, "       %s%s%s\n", p.rule.Render("│ "),
				strings.Repeat(" ", e.Location.Column-1), p.marker.Render("^"))
		}
	}
}

// FormatCompact returns "file:line: CODE: message".
func (e *Error) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	return strings.Join(append(parts, e.Message), ": ")
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	DocURL     string        `json:"docUrl,omitempty"`
}

// FormatJSON returns the error as a JSON object.
func (e *Error) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
		DocURL:     e.DocURL,
	}
	if e.Location != nil {
		out.Location = &jsonLocation{File: e.Location.File, Line: e.Location.Line, Column: e.Location.Column}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Sprintf(`{"message":%q}`, e.Message)
	}
	return string(data)
}

// wrapText wraps text at word boundaries to at most width cells.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	return strings.Split(ansi.Wordwrap(text, width, ""), "\n")
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	var ge *Error
	if !stderrors.As(err, &ge) {
		ge = &Error{Message: err.Error()}
	}
	fmt.Fprint(os.Stderr, ge.Format())
}
