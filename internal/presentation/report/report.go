// Package report renders validation results for humans.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/sievekit/sieve/pkg/schema"
)

// Markdown renders the result as a markdown document. Field paths are
// sorted so the report is stable across runs.
func Markdown(res *schema.Result) string {
	var b strings.Builder
	b.WriteString("# Validation report\n\n")

	if res.Valid {
		b.WriteString("Document is **valid**.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Document is **invalid**: %d field(s) in error.\n\n", len(res.Errors))

	paths := make([]string, 0, len(res.Errors))
	for path := range res.Errors {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		fmt.Fprintf(&b, "- `%s`\n", path)
		for _, msg := range res.Errors[path] {
			fmt.Fprintf(&b, "  - %s\n", msg)
		}
	}
	return b.String()
}

// Render writes a human-readable report of res to w.
// When w is a terminal, the markdown is rendered with styling and a
// colored verdict line; otherwise the plain markdown is written as-is.
func Render(w io.Writer, res *schema.Result) error {
	md := Markdown(res)

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		_, werr := io.WriteString(w, md)
		return werr
	}

	out, err := r.Render(md)
	if err != nil {
		_, werr := io.WriteString(w, md)
		return werr
	}

	if _, err := io.WriteString(w, out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, verdict(res.Valid))
	return err
}

func verdict(valid bool) termenv.Style {
	p := termenv.ColorProfile()
	if valid {
		return termenv.String("  PASS").Foreground(p.Color("#34d399")).Bold()
	}
	return termenv.String("  FAIL").Foreground(p.Color("#fb7185")).Bold()
}
