// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package document

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const indentUnit = "  "

// Write serializes the object tree to w followed by a newline.
//
// Every pair and list element starts on a new line indented by two spaces
// per nesting level; separators are ", " and empty containers are printed
// as {} and [].
func Write(w io.Writer, obj *Object) error {
	if err := obj.Err(); err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	// bufio.Writer keeps the first write error and reports it on Flush.
	bw := bufio.NewWriter(w)

	writeObject(bw, obj, 0)
	bw.WriteByte('\n') //nolint:errcheck

	return bw.Flush()
}

// String returns the serialized form of the object without the trailing newline.
func String(obj *Object) string {
	var sb strings.Builder

	bw := bufio.NewWriter(&sb)
	writeObject(bw, obj, 0)
	bw.Flush() //nolint:errcheck

	return sb.String()
}

func writeIndent(w *bufio.Writer, level int) {
	w.WriteByte('\n') //nolint:errcheck

	for range level {
		w.WriteString(indentUnit) //nolint:errcheck
	}
}

func writeObject(w *bufio.Writer, obj *Object, level int) {
	w.WriteByte('{') //nolint:errcheck

	if obj == nil {
		w.WriteByte('}') //nolint:errcheck

		return
	}

	for idx, p := range obj.pairs {
		if idx > 0 {
			w.WriteString(", ") //nolint:errcheck
		}

		writeIndent(w, level+1)
		writeString(w, p.key)
		w.WriteString(": ") //nolint:errcheck
		writeNode(w, p.value, level+1)
	}

	if len(obj.pairs) > 0 {
		writeIndent(w, level)
	}

	w.WriteByte('}') //nolint:errcheck
}

func writeList(w *bufio.Writer, list *List, level int) {
	w.WriteByte('[') //nolint:errcheck

	if list == nil {
		w.WriteByte(']') //nolint:errcheck

		return
	}

	for idx, n := range list.items {
		if idx > 0 {
			w.WriteString(", ") //nolint:errcheck
		}

		writeIndent(w, level+1)
		writeNode(w, n, level+1)
	}

	if len(list.items) > 0 {
		writeIndent(w, level)
	}

	w.WriteByte(']') //nolint:errcheck
}

func writeNode(w *bufio.Writer, n Node, level int) {
	switch n.kind {
	case KindString:
		writeString(w, n.str)
	case KindFlag:
		if n.flag {
			w.WriteString("true") //nolint:errcheck
		} else {
			w.WriteString("false") //nolint:errcheck
		}
	case KindList:
		writeList(w, n.list, level)
	case KindObject:
		writeObject(w, n.obj, level)
	}
}

const hexDigits = "0123456789abcdef"

func writeString(w *bufio.Writer, s string) {
	w.WriteByte('"') //nolint:errcheck

	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			w.WriteByte('\\') //nolint:errcheck
			w.WriteRune(r)    //nolint:errcheck
		case r == '\n':
			w.WriteString(`\n`) //nolint:errcheck
		case r == '\t':
			w.WriteString(`\t`) //nolint:errcheck
		case r < 0x20:
			w.WriteString(`\u00`)         //nolint:errcheck
			w.WriteByte(hexDigits[r>>4])  //nolint:errcheck
			w.WriteByte(hexDigits[r&0xf]) //nolint:errcheck
		default:
			w.WriteRune(r) //nolint:errcheck
		}
	}

	w.WriteByte('"') //nolint:errcheck
}
