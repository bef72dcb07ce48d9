package server

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/idl-lang/idlls/idl"
)

func toIdlPosition(p protocol.Position) idl.Position {
	return idl.Position{Line: uint32(p.Line), Character: uint32(p.Character)}
}

func toProtocolPosition(p idl.Position) protocol.Position {
	return protocol.Position{Line: p.Line, Character: p.Character}
}

func toProtocolRange(r idl.Range) protocol.Range {
	return protocol.Range{Start: toProtocolPosition(r.Start), End: toProtocolPosition(r.End)}
}

func toIdlRange(r protocol.Range) idl.Range {
	return idl.Range{Start: toIdlPosition(r.Start), End: toIdlPosition(r.End)}
}

func toProtocolSeverity(s idl.Severity) protocol.DiagnosticSeverity {
	return protocol.DiagnosticSeverity(s)
}

// toProtocolDiagnostic does not round-trip idl.Diagnostic.Code onto the
// wire: the version code-action handler recomputes DEFINE_VERSION /
// UPDATE_VERSION straight from the core instead of reading it back off
// an incoming CodeActionParams.Context.Diagnostics entry, so no
// protocol-level diagnostic code representation is needed here.
func toProtocolDiagnostic(d idl.Diagnostic) protocol.Diagnostic {
	severity := toProtocolSeverity(d.Severity)
	return protocol.Diagnostic{
		Range:    toProtocolRange(d.Range),
		Severity: &severity,
		Message:  d.Message,
	}
}
