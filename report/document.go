// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/siderolabs/go-extlayout/document"
	"github.com/siderolabs/go-extlayout/extent"
	"github.com/siderolabs/go-extlayout/journal"
	"github.com/siderolabs/go-extlayout/layout"
)

type documentRenderer struct {
	w      io.Writer
	diag   io.Writer
	root   *document.Object
	groups *document.List
	format Format
	err    error
}

// NewDocumentRenderer returns a renderer building the structured report.
//
// The document is written to w by Finish, notices go to diag as they arrive.
func NewDocumentRenderer(w io.Writer, format Format, diag io.Writer) Renderer {
	if diag == nil {
		diag = io.Discard
	}

	return &documentRenderer{
		w:      w,
		diag:   diag,
		root:   document.NewObject(),
		format: format,
	}
}

func decimal[T uint32 | uint64 | int32](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

// Header is a no-op: the superblock summary is not part of the document.
func (r *documentRenderer) Header(*layout.Geometry) {}

func (r *documentRenderer) Notice(text string) {
	if _, err := io.WriteString(r.diag, text); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *documentRenderer) Journal(s *journal.Summary) {
	obj := r.root.CreateObject("journal")

	features := obj.CreateList("journal-features", document.KindString)
	for _, feature := range s.Features {
		features.AddString(feature)
	}

	obj.AddString("journal-size", s.Size)

	if s.BlockSize != nil {
		obj.AddString("journal-block-size", decimal(*s.BlockSize))
	}

	obj.AddString("journal-length", decimal(s.Length))

	if s.FirstBlock != nil {
		obj.AddString("journal-first-block", decimal(*s.FirstBlock))
	}

	obj.AddString("journal-sequence", fmt.Sprintf("0x%08x", s.Sequence))
	obj.AddString("journal-start", decimal(s.Start))

	if s.NumberOfUsers != nil {
		obj.AddString("journal-number-of-users", decimal(*s.NumberOfUsers))
	}

	if s.ChecksumType != nil {
		obj.AddString("journal-checksum-type", *s.ChecksumType)
	}

	if s.Checksum != nil {
		obj.AddString("journal-checksum", fmt.Sprintf("0x%08x", *s.Checksum))
	}

	if len(s.Users) > 0 {
		users := obj.CreateList("journal-users", document.KindString)
		for _, user := range s.Users {
			users.AddString(user.String())
		}
	}

	if s.Errno != nil {
		obj.AddString("journal-errno", decimal(*s.Errno))
	}
}

func (r *documentRenderer) BadBlocks(blocks []uint32, dump bool) {
	if !dump && len(blocks) == 0 {
		return
	}

	list := r.root.CreateList("bad-blocks", document.KindString)
	for _, blk := range blocks {
		list.AddString(decimal(blk))
	}
}

func (r *documentRenderer) BeginGroups(bool) {
	r.groups = r.root.CreateList("desc", document.KindObject)
}

func (r *documentRenderer) CompactGroup(group *CompactGroup) {
	obj := r.groups.CreateObject()

	super := "-1"
	if group.Superblock != nil {
		super = decimal(*group.Superblock)
	}

	obj.AddString("group", decimal(group.Num))
	obj.AddString("block", decimal(group.FirstBlock))
	obj.AddString("super", super)
	obj.AddString("gdt", group.Descriptors)
	obj.AddString("bbitmap", decimal(group.BlockBitmap))
	obj.AddString("ibitmap", decimal(group.InodeBitmap))
	obj.AddString("itable", decimal(group.InodeTable))
}

func (r *documentRenderer) fillRange(obj *document.Object, rng Range) {
	obj.AddString("start", r.format.Number(rng.Start))
	obj.AddString("len", r.format.Number(rng.Len()))
}

func (r *documentRenderer) addRange(obj *document.Object, key string, rng Range) {
	r.fillRange(obj.CreateObject(key), rng)
}

func addRelOffset(obj *document.Object, key string, rel *RelOffset) {
	child := obj.CreateObject(key)

	if rel == nil {
		return
	}

	if rel.Group != nil {
		child.AddString("bg", decimal(*rel.Group))
	}

	child.AddString("offset", decimal(rel.Offset))
}

func (r *documentRenderer) addLocation(obj *document.Object, prefix string, loc *Location) {
	obj.AddString(prefix+"-at", r.format.Number(loc.Block))
	addRelOffset(obj, prefix+"-rel-offset", loc.Rel)

	if loc.Checksum != nil {
		obj.AddString(prefix+"-csum", fmt.Sprintf("0x%08x", *loc.Checksum))
	}
}

func (r *documentRenderer) addExtents(obj *document.Object, key string, extents []extent.Extent) {
	if len(extents) == 0 {
		return
	}

	list := obj.CreateList(key, document.KindObject)

	for _, e := range extents {
		r.fillRange(list.CreateObject(), Range{Start: e.Start, End: e.End()})
	}
}

func (r *documentRenderer) Group(group *Group) {
	f := r.format
	obj := r.groups.CreateObject()

	obj.AddString("num", decimal(group.Num))
	r.addRange(obj, "blocks", group.Blocks)

	if group.Checksum != nil {
		obj.AddString("group-desc-csum", fmt.Sprintf("0x%04x", *group.Checksum))

		if group.ExpectedChecksum != nil {
			obj.AddString("group-desc-csum-exp", fmt.Sprintf("0x%04x", *group.ExpectedChecksum))
		}
	}

	opts := obj.CreateList("bg-opts", document.KindString)
	for _, flag := range group.Flags {
		opts.AddString(flag)
	}

	if group.HasSuperblock() {
		obj.AddString("superblock-type", group.SuperblockType)
		obj.AddString("superblock-at", f.Number(group.Superblock))
	}

	switch {
	case group.Descriptors != nil:
		r.addRange(obj, "group-descriptors-at", *group.Descriptors)

		if group.ReservedGDT != nil {
			r.addRange(obj, "reserved-gdt-blocks-at", *group.ReservedGDT)
		}
	case group.NewDescriptor != nil:
		obj.AddString("group-desc-at", f.Number(*group.NewDescriptor))
	}

	r.addLocation(obj, "block-bitmap", &group.BlockBitmap)
	r.addLocation(obj, "inode-bitmap", &group.InodeBitmap)

	r.addRange(obj, "inode-table-at", group.InodeTable)
	addRelOffset(obj, "inode-table-rel-offset", group.InodeTableRel)

	obj.AddString("free-blocks-count", fmt.Sprintf("%d %s", group.FreeBlocks, group.Units))
	obj.AddString("free-inodes-count", decimal(group.FreeInodes))
	obj.AddString("used-dirs-count", decimal(group.UsedDirs))

	if group.ItableUnused != 0 {
		obj.AddString("unused-inodes", decimal(group.ItableUnused))
	}

	r.addExtents(obj, "free-blocks", group.FreeBlockExtents)
	r.addExtents(obj, "free-inodes", group.FreeInodeExtents)
}

// Finish writes the document and releases it.
func (r *documentRenderer) Finish() error {
	defer r.root.Release()

	if err := document.Write(r.w, r.root); err != nil {
		return err
	}

	return r.err
}
