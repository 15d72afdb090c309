package core

import (
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffContext is the number of unchanged lines shown around each change
const DiffContext = 3

// DiffLine is one line of a line diff. Op is ' ' for unchanged, '-' for
// a line only in the vault and '+' for a line only in the local text.
type DiffLine struct {
	Op   byte
	Text string
}

// DiffResult compares a stored entry with local text
type DiffResult struct {
	Name  string
	Lines []DiffLine
}

// Equal reports whether the entry and the local text are identical
func (d *DiffResult) Equal() bool {
	for _, l := range d.Lines {
		if l.Op != ' ' {
			return false
		}
	}
	return true
}

// Format renders changed lines with DiffContext lines of context. Runs of
// skipped unchanged lines are shown as "...".
func (d *DiffResult) Format() string {
	keep := make([]bool, len(d.Lines))
	for i, l := range d.Lines {
		if l.Op == ' ' {
			continue
		}
		lo, hi := max(0, i-DiffContext), min(len(d.Lines)-1, i+DiffContext)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var b strings.Builder
	skipped := false
	for i, l := range d.Lines {
		if !keep[i] {
			if !skipped {
				b.WriteString("...\n")
				skipped = true
			}
			continue
		}
		skipped = false
		b.WriteByte(l.Op)
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Diff decrypts the entry name and compares it line by line with local
func (v *Vault) Diff(ctx context.Context, name, local string, password []byte) (*DiffResult, error) {
	stored, err := v.Get(ctx, name, password)
	if err != nil {
		return nil, err
	}

	return &DiffResult{Name: name, Lines: lineDiff(stored, local)}, nil
}

// lineDiff uses line-mode diffing: each line is mapped to a rune, the
// rune strings are diffed, then mapped back
func lineDiff(vault, local string) []DiffLine {
	dmp := diffmatchpatch.New()

	a, b, lineArray := dmp.DiffLinesToChars(vault, local)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []DiffLine
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = '-'
		case diffmatchpatch.DiffInsert:
			op = '+'
		}
		for _, text := range splitLines(d.Text) {
			lines = append(lines, DiffLine{Op: op, Text: text})
		}
	}
	return lines
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.SplitAfter(text, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\n")
	}
	return parts
}
