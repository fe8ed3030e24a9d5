package render

import (
	"fmt"
	"io"
	"strings"
)

// TextTarget writes a plain-text step list, one line per row.
type TextTarget struct {
	w io.Writer
}

// NewTextTarget creates a TextTarget writing to w.
func NewTextTarget(w io.Writer) *TextTarget {
	return &TextTarget{w: w}
}

func (t *TextTarget) Title(text string) error {
	_, err := fmt.Fprintf(t.w, "%s\n%s\n", text, strings.Repeat("=", len([]rune(text))))
	return err
}

func (t *TextTarget) Row(r Row) error {
	marker := " "
	if r.Highlight != "" {
		marker = "*"
	}
	_, err := fmt.Fprintf(t.w, "%s%2d. %s (%s)\n", marker, r.Number, r.Text, r.Distance)
	return err
}

func (t *TextTarget) Notice(text string) error {
	_, err := fmt.Fprintf(t.w, "%s\n", text)
	return err
}
