// Package server wires the idl language-intelligence core onto an LSP
// transport: it owns the multi-document store and translates protocol
// requests into core queries and back.
package server

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/idl-lang/idlls/idl"
)

// Workspace holds one Document plus its cached SyntaxTree per URI. It
// is the thin substitute for a full workspace/project loader — this
// module never reads directories or watches the filesystem; documents
// enter the store only via textDocument/didOpen and didChange.
type Workspace struct {
	mu    deadlock.RWMutex
	files map[string]*documentEntry
}

type documentEntry struct {
	doc  *idl.Document
	tree *idl.SyntaxTree // cached, tagged with the revision it was parsed from
}

// NewWorkspace creates an empty document store.
func NewWorkspace() *Workspace {
	return &Workspace{files: make(map[string]*documentEntry)}
}

// Open registers uri with the given initial text, replacing any
// existing entry for that URI.
func (w *Workspace) Open(uri string, text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[uri] = &documentEntry{doc: idl.NewDocument(text)}
}

// Close removes uri from the store.
func (w *Workspace) Close(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, uri)
}

// ApplyFullChange replaces the entire buffer for uri, matching a
// TextDocumentSyncKindFull notification.
func (w *Workspace) ApplyFullChange(uri string, text string) {
	w.mu.RLock()
	entry, ok := w.files[uri]
	w.mu.RUnlock()
	if !ok {
		w.Open(uri, text)
		return
	}
	entry.doc.ApplyEdit(false, 0, 0, text)
}

// ApplyRangeChange replaces the span covered by r in uri with text,
// matching a single incremental TextDocumentContentChangeEvent.
func (w *Workspace) ApplyRangeChange(uri string, r idl.Range, text string) {
	w.mu.RLock()
	entry, ok := w.files[uri]
	w.mu.RUnlock()
	if !ok {
		return
	}
	entry.doc.ApplyPositionEdit(r, text)
}

// Document returns the Document for uri, or nil if it isn't open.
func (w *Workspace) Document(uri string) *idl.Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	entry, ok := w.files[uri]
	if !ok {
		return nil
	}
	return entry.doc
}

// Tree returns a SyntaxTree for uri, reparsing only when the cached
// tree's revision no longer matches the document's — satisfying
// spec.md §5's "stale results must be detectable and discarded".
func (w *Workspace) Tree(uri string) *idl.SyntaxTree {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.files[uri]
	if !ok {
		return nil
	}
	if entry.tree != nil && entry.tree.Revision == entry.doc.Revision() {
		return entry.tree
	}
	entry.tree = idl.ParseIdl(entry.doc)
	return entry.tree
}

// URIs returns every open document URI, for cross-file operations like
// the rename planner and workspace-wide reference search.
func (w *Workspace) URIs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	uris := make([]string, 0, len(w.files))
	for uri := range w.files {
		uris = append(uris, uri)
	}
	return uris
}
