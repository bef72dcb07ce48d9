package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/idl-lang/idlls/idl"
)

// ModelLoader validates shapes against the full language specification.
// The core never calls this — it is purely an external collaborator
// that server composes against (spec.md §1, §6). No concrete
// implementation ships in this module; Server runs with a nil loader
// and publishes only the core's own in-band parse diagnostics.
type ModelLoader interface {
	Validate(tree *idl.SyntaxTree) []idl.Diagnostic
}

// DiagnosticsPublisher pushes a document's diagnostics to the editor.
// Server always runs with one wired in — glspDiagnosticsPublisher over
// stdio — but the indirection lets an alternate transport (or a test)
// observe published diagnostics without a real glsp.Context.
type DiagnosticsPublisher interface {
	Publish(ctx *glsp.Context, uri string, diags []idl.Diagnostic)
}

// glspDiagnosticsPublisher is the default DiagnosticsPublisher: it
// notifies the connected client over glsp's own transport.
type glspDiagnosticsPublisher struct{}

func (glspDiagnosticsPublisher) Publish(ctx *glsp.Context, uri string, diags []idl.Diagnostic) {
	protocolDiags := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		protocolDiags = append(protocolDiags, toProtocolDiagnostic(d))
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: protocolDiags,
	})
}
