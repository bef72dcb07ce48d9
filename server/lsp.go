package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "idllsp"

// Server wires the idl core onto glsp's stdio transport. Every handler
// here is a thin translation from LSP params to a core query and back
// (SPEC_FULL.md §6) — no handler contains parsing or lookup logic of
// its own.
type Server struct {
	workspace   *Workspace
	modelLoader ModelLoader
	publisher   DiagnosticsPublisher

	handler protocol.Handler
	server  *glspserver.Server
	version string
}

// NewServer builds a Server with no ModelLoader wired in: external
// semantic-model validation is out of scope for this module
// (SPEC_FULL.md §6), so diagnostics are only ever the core's own
// in-band parse errors plus the two version checks. Diagnostics are
// published through glspDiagnosticsPublisher, the stdio-transport
// DiagnosticsPublisher.
func NewServer(version string) *Server {
	s := &Server{
		workspace: NewWorkspace(),
		publisher: glspDiagnosticsPublisher{},
		version:   version,
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentHover:      s.textDocumentHover,
		TextDocumentDefinition: s.textDocumentDefinition,
		TextDocumentReferences: s.textDocumentReferences,
		TextDocumentRename:     s.textDocumentRename,
		TextDocumentCodeAction: s.textDocumentCodeAction,
	}

	s.server = glspserver.NewServer(&s.handler, lsName, false)
	return s
}

// RunStdio blocks serving LSP requests over stdin/stdout.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	capabilities.HoverProvider = boolPtr(true)
	capabilities.DefinitionProvider = boolPtr(true)
	capabilities.ReferencesProvider = boolPtr(true)
	capabilities.RenameProvider = boolPtr(true)
	capabilities.CodeActionProvider = boolPtr(true)

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.workspace.Open(params.TextDocument.URI, params.TextDocument.Text)
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.workspace.ApplyFullChange(params.TextDocument.URI, whole.Text)
		}
		if partial, ok := change.(protocol.TextDocumentContentChangeEvent); ok {
			s.workspace.ApplyRangeChange(params.TextDocument.URI, toIdlRange(partial.Range), partial.Text)
		}
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.workspace.Close(params.TextDocument.URI)
	return nil
}

// publishDiagnostics gathers the core's own parse/version diagnostics,
// merges in a wired ModelLoader's (none ships in this module,
// SPEC_FULL.md §6), and hands them to the Server's DiagnosticsPublisher.
func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	doc := s.workspace.Document(uri)
	tree := s.workspace.Tree(uri)
	if doc == nil || tree == nil {
		return
	}

	diags := tree.Diagnostics(doc)
	if s.modelLoader != nil {
		diags = append(diags, s.modelLoader.Validate(tree)...)
	}

	s.publisher.Publish(ctx, uri, diags)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
