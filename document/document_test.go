// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package document_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siderolabs/go-extlayout/document"
)

func TestWrite(t *testing.T) {
	for _, test := range []struct {
		name  string
		build func() *document.Object

		expected string
	}{
		{
			name:     "empty",
			build:    document.NewObject,
			expected: "{}\n",
		},
		{
			name: "flat",
			build: func() *document.Object {
				obj := document.NewObject()
				obj.AddString("num", "0")
				obj.AddFlag("ok", true)

				return obj
			},
			expected: "{\n  \"num\": \"0\", \n  \"ok\": true\n}\n",
		},
		{
			name: "nested",
			build: func() *document.Object {
				root := document.NewObject()
				desc := root.CreateList("desc", document.KindObject)

				group := desc.CreateObject()
				group.AddString("num", "0")
				group.CreateList("bg-opts", document.KindString)
				group.CreateObject("inode-table-rel-offset")

				blocks := group.CreateObject("blocks")
				blocks.AddString("start", "0")
				blocks.AddString("len", "8192")

				return root
			},
			expected: strings.Join([]string{
				`{`,
				`  "desc": [`,
				`    {`,
				`      "num": "0", `,
				`      "bg-opts": [], `,
				`      "inode-table-rel-offset": {}, `,
				`      "blocks": {`,
				`        "start": "0", `,
				`        "len": "8192"`,
				`      }`,
				`    }`,
				`  ]`,
				`}`,
				``,
			}, "\n"),
		},
		{
			name: "string list",
			build: func() *document.Object {
				obj := document.NewObject()
				list := obj.CreateList("journal-features", document.KindString)
				list.AddString("journal_64bit")
				list.AddString("journal_checksum_v3")

				flags := obj.CreateList("flags", document.KindFlag)
				flags.AddFlag(false)

				return obj
			},
			expected: strings.Join([]string{
				`{`,
				`  "journal-features": [`,
				`    "journal_64bit", `,
				`    "journal_checksum_v3"`,
				`  ], `,
				`  "flags": [`,
				`    false`,
				`  ]`,
				`}`,
				``,
			}, "\n"),
		},
		{
			name: "escaping",
			build: func() *document.Object {
				obj := document.NewObject()
				obj.AddString("label", "a\"b\\c\n\x01")

				return obj
			},
			expected: "{\n  \"label\": \"a\\\"b\\\\c\\n\\u0001\"\n}\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer

			obj := test.build()

			require.NoError(t, document.Write(&buf, obj))
			assert.Equal(t, test.expected, buf.String())
			assert.Equal(t, strings.TrimSuffix(test.expected, "\n"), document.String(obj))

			var v any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
		})
	}
}

func TestObject(t *testing.T) {
	obj := document.NewObject()
	obj.AddString("a", "1")
	child := obj.CreateObject("b")
	child.AddString("x", "y")
	obj.AddString("c", "3")

	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())

	// replacing keeps the position
	obj.AddString("a", "2")
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())

	n, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, document.KindString, n.Kind())
	assert.Equal(t, "2", n.Str())

	assert.True(t, obj.Delete("b"))
	assert.False(t, obj.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.Equal(t, 0, child.Len(), "deleted subtree is released")

	_, ok = obj.Get("b")
	assert.False(t, ok)

	obj.Release()
	assert.Equal(t, 0, obj.Len())
}

func TestListKindMismatch(t *testing.T) {
	obj := document.NewObject()
	list := obj.CreateList("free-blocks", document.KindObject)
	list.AddString("oops")
	list.CreateObject().AddString("start", "1")

	assert.Equal(t, 1, list.Len())
	assert.Equal(t, document.KindObject, list.At(0).Kind())

	err := document.Write(&bytes.Buffer{}, obj)
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrKindMismatch))
}

func TestRelease(t *testing.T) {
	root := document.NewObject()
	desc := root.CreateList("desc", document.KindObject)
	group := desc.CreateObject()
	free := group.CreateList("free-inodes", document.KindObject)
	free.CreateObject().AddString("start", "12")

	root.Release()

	assert.Equal(t, 0, root.Len())
	assert.Equal(t, 0, desc.Len())
	assert.Equal(t, 0, group.Len())
	assert.Equal(t, 0, free.Len())
}
