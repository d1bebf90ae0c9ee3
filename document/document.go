// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package document implements an ordered in-memory document tree
// which is serialized to an indented JSON text.
//
// A tree is built from four node kinds: strings, flags, lists and objects.
// Lists hold elements of a single kind, objects map unique keys to nodes
// preserving insertion order. Every node is owned by exactly one parent.
package document

import (
	"errors"
	"fmt"
)

// Kind is the kind of a document node.
type Kind int

// Node kinds.
const (
	KindString Kind = iota
	KindFlag
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFlag:
		return "flag"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrKindMismatch is reported when a list receives an element of a wrong kind.
var ErrKindMismatch = errors.New("list element kind mismatch")

// Node is a single value in the document tree.
//
// The zero Node is an empty string.
type Node struct {
	list *List
	obj  *Object
	str  string
	kind Kind
	flag bool
}

// Kind returns the kind of the node.
func (n Node) Kind() Kind {
	return n.kind
}

// Str returns the string value of a KindString node.
func (n Node) Str() string {
	return n.str
}

// Flag returns the value of a KindFlag node.
func (n Node) Flag() bool {
	return n.flag
}

// List returns the list of a KindList node, or nil.
func (n Node) List() *List {
	return n.list
}

// Object returns the object of a KindObject node, or nil.
func (n Node) Object() *Object {
	return n.obj
}

func (n Node) release() {
	switch n.kind {
	case KindList:
		n.list.Release()
	case KindObject:
		n.obj.Release()
	case KindString, KindFlag:
	}
}

func stringNode(s string) Node { return Node{kind: KindString, str: s} }
func flagNode(f bool) Node     { return Node{kind: KindFlag, flag: f} }
func listNode(l *List) Node    { return Node{kind: KindList, list: l} }
func objectNode(o *Object) Node {
	return Node{kind: KindObject, obj: o}
}

type pair struct {
	key   string
	value Node
}

// Object is an ordered mapping of unique keys to nodes.
type Object struct {
	pairs []pair
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.pairs)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.pairs))

	for _, p := range o.pairs {
		keys = append(keys, p.key)
	}

	return keys
}

// Get returns the node stored under key.
func (o *Object) Get(key string) (Node, bool) {
	if idx := o.index(key); idx >= 0 {
		return o.pairs[idx].value, true
	}

	return Node{}, false
}

func (o *Object) index(key string) int {
	for idx, p := range o.pairs {
		if p.key == key {
			return idx
		}
	}

	return -1
}

// set appends the pair, or replaces the value in place if the key is already present.
func (o *Object) set(key string, value Node) {
	if idx := o.index(key); idx >= 0 {
		o.pairs[idx].value.release()
		o.pairs[idx].value = value

		return
	}

	o.pairs = append(o.pairs, pair{key: key, value: value})
}

// AddString stores a string under key.
func (o *Object) AddString(key, value string) {
	o.set(key, stringNode(value))
}

// AddFlag stores a flag under key.
func (o *Object) AddFlag(key string, value bool) {
	o.set(key, flagNode(value))
}

// AddList stores the list under key, the object takes ownership of the list.
func (o *Object) AddList(key string, list *List) {
	o.set(key, listNode(list))
}

// AddObject stores the object under key, the object takes ownership of the child.
func (o *Object) AddObject(key string, child *Object) {
	o.set(key, objectNode(child))
}

// CreateObject creates an empty object stored under key.
func (o *Object) CreateObject(key string) *Object {
	child := NewObject()
	o.AddObject(key, child)

	return child
}

// CreateList creates an empty list of the kind stored under key.
func (o *Object) CreateList(key string, kind Kind) *List {
	list := NewList(kind)
	o.AddList(key, list)

	return list
}

// Delete removes the key and releases its value.
//
// Delete returns false if the key is not present.
func (o *Object) Delete(key string) bool {
	idx := o.index(key)
	if idx < 0 {
		return false
	}

	o.pairs[idx].value.release()
	o.pairs = append(o.pairs[:idx], o.pairs[idx+1:]...)

	return true
}

// Release recursively drops the contents of the object.
func (o *Object) Release() {
	if o == nil {
		return
	}

	for _, p := range o.pairs {
		p.value.release()
	}

	o.pairs = nil
}

// Err returns the first kind mismatch recorded in the object's children.
func (o *Object) Err() error {
	for _, p := range o.pairs {
		if err := p.value.err(); err != nil {
			return fmt.Errorf("%q: %w", p.key, err)
		}
	}

	return nil
}

// List is an ordered sequence of nodes of the same kind.
type List struct {
	mismatch error
	items    []Node
	kind     Kind
}

// NewList creates an empty list holding elements of the kind.
func NewList(kind Kind) *List {
	return &List{kind: kind}
}

// Kind returns the element kind.
func (l *List) Kind() Kind {
	return l.kind
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.items)
}

// At returns the element at index idx.
func (l *List) At(idx int) Node {
	return l.items[idx]
}

func (l *List) add(n Node) {
	if n.kind != l.kind {
		if l.mismatch == nil {
			l.mismatch = fmt.Errorf("%w: %s added to list of %s", ErrKindMismatch, n.kind, l.kind)
		}

		n.release()

		return
	}

	l.items = append(l.items, n)
}

// AddString appends a string.
func (l *List) AddString(value string) {
	l.add(stringNode(value))
}

// AddFlag appends a flag.
func (l *List) AddFlag(value bool) {
	l.add(flagNode(value))
}

// AddList appends a nested list.
func (l *List) AddList(list *List) {
	l.add(listNode(list))
}

// AddObject appends an object.
func (l *List) AddObject(obj *Object) {
	l.add(objectNode(obj))
}

// CreateObject appends a new empty object and returns it.
func (l *List) CreateObject() *Object {
	obj := NewObject()
	l.AddObject(obj)

	return obj
}

// Release recursively drops the contents of the list.
func (l *List) Release() {
	if l == nil {
		return
	}

	for _, n := range l.items {
		n.release()
	}

	l.items = nil
}

// Err returns the first kind mismatch recorded in the list or its children.
func (l *List) Err() error {
	if l.mismatch != nil {
		return l.mismatch
	}

	for idx, n := range l.items {
		if err := n.err(); err != nil {
			return fmt.Errorf("[%d]: %w", idx, err)
		}
	}

	return nil
}

func (n Node) err() error {
	switch n.kind {
	case KindList:
		return n.list.Err()
	case KindObject:
		return n.obj.Err()
	case KindString, KindFlag:
	}

	return nil
}
