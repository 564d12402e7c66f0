// dump.go - Human-readable structure dump of a RIFF tree.
package riff

import (
	"fmt"
	"io"
	"strings"
)

// Dump prints every node of buf, descending into lists and into the form
// body of RIFF chunks. Each line carries
// the node kind, its declared size and its tag, indented by nesting depth.
func Dump(w io.Writer, buf []byte) error {
	return dumpLevel(w, buf, 0)
}

func dumpLevel(w io.Writer, buf []byte, level int) error {
	r := NewReader(buf)
	for {
		entry, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := DumpEntry(w, entry, level); err != nil {
			return err
		}
		switch e := entry.(type) {
		case List:
			if err := dumpLevel(w, e.Content, level+1); err != nil {
				return fmt.Errorf("list %s: %w", e.Type, err)
			}
		case Chunk:
			if isForm(e) {
				if err := dumpLevel(w, e.Content[4:], level+1); err != nil {
					return fmt.Errorf("form %s: %w", Decode(e.Content), err)
				}
			}
		}
	}
}

// DumpEntry prints a single node line without descending into it.
func DumpEntry(w io.Writer, e Entry, level int) error {
	indent := strings.Repeat("  ", level)
	var err error
	switch e := e.(type) {
	case List:
		_, err = fmt.Fprintf(w, "%sLIST size=%d type=%s\n", indent, e.Size(), e.Type)
	case Chunk:
		if isForm(e) {
			_, err = fmt.Fprintf(w, "%sRIFF size=%d form=%s\n", indent, e.Size(), Decode(e.Content))
			break
		}
		_, err = fmt.Fprintf(w, "%sCHUNK size=%d id=%s\n", indent, e.Size(), e.ID)
	}
	return err
}

// isForm reports whether c is a RIFF chunk whose content starts with a form
// type.
func isForm(c Chunk) bool {
	return c.ID == RIFF && len(c.Content) >= 4
}
