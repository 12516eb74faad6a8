package main

import (
	"io"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// writeDiff writes from with the deletions and insertions turning it into
// to marked inline, as [-deleted-] and {+inserted+} when not colored.
func writeDiff(w io.Writer, from, to string, colored bool) error {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	del := color.New(color.FgRed, color.CrossedOut)
	ins := color.New(color.FgGreen)
	if colored {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}
	for _, d := range diffs {
		var err error
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			_, err = io.WriteString(w, d.Text)
		case diffmatchpatch.DiffDelete:
			if colored {
				_, err = del.Fprint(w, d.Text)
			} else {
				_, err = io.WriteString(w, "[-"+d.Text+"-]")
			}
		case diffmatchpatch.DiffInsert:
			if colored {
				_, err = ins.Fprint(w, d.Text)
			} else {
				_, err = io.WriteString(w, "{+"+d.Text+"+}")
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
