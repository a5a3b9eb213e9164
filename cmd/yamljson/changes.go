package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Output modes of the watch command.
const (
	changesFull  = "full"
	changesPatch = "patch"
	changesDiff  = "diff"
)

var errUnknownChanges = errors.New("unknown --changes mode")

func validChanges(mode string) error {
	switch mode {
	case changesFull, changesPatch, changesDiff:
		return nil
	default:
		return fmt.Errorf("%w %q (full, patch, diff)", errUnknownChanges, mode)
	}
}

// palette colors terminal output. Coloring is decided per palette, never
// from the package-level color.NoColor.
type palette struct {
	err, added, removed *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
	}

	for _, c := range []*color.Color{p.err, p.added, p.removed} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

// changeWriter prints successive renderings of one document. The first
// rendering is always written in full; later ones follow the mode.
type changeWriter struct {
	mode    string
	colors  palette
	out     io.Writer
	written bool
	prev    []byte
}

func (c *changeWriter) write(current []byte) error {
	defer func() {
		c.prev = current
		c.written = true
	}()

	if !c.written || c.mode == changesFull {
		_, err := c.out.Write(current)

		return err //nolint:wrapcheck
	}

	if c.mode == changesPatch {
		return c.writePatch(current)
	}

	c.writeDiff(current)

	return nil
}

// writePatch emits an RFC 7386 merge patch. Merge patches replace non-object
// roots wholesale, so those are written in full.
func (c *changeWriter) writePatch(current []byte) error {
	if !isObject(c.prev) || !isObject(current) {
		_, err := c.out.Write(current)

		return err //nolint:wrapcheck
	}

	patch, err := jsonpatch.CreateMergePatch(c.prev, current)
	if err != nil {
		return fmt.Errorf("creating merge patch: %w", err)
	}

	_, err = c.out.Write(append(patch, '\n'))

	return err //nolint:wrapcheck
}

// writeDiff prints the changed lines only, prefixed with "-" or "+".
func (c *changeWriter) writeDiff(current []byte) {
	dmp := diffmatchpatch.New()

	from, to, lines := dmp.DiffLinesToChars(string(c.prev), string(current))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(from, to, false), lines)

	for _, diff := range diffs {
		var (
			prefix string
			paint  *color.Color
		)

		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix, paint = "-", c.colors.removed
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+", c.colors.added
		case diffmatchpatch.DiffEqual:
			continue
		}

		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}

			_, _ = paint.Fprint(c.out, prefix+strings.TrimSuffix(line, "\n"))
			_, _ = io.WriteString(c.out, "\n")
		}
	}
}

func isObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)

	return len(trimmed) > 0 && trimmed[0] == '{'
}
