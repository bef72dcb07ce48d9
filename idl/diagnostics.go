package idl

// Severity mirrors the editor protocol's diagnostic severity levels.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// DiagnosticCode names the two well-known version diagnostics the
// code-action layer recognises (spec.md §6).
type DiagnosticCode string

const (
	CodeNone           DiagnosticCode = ""
	CodeDefineVersion  DiagnosticCode = "DEFINE_VERSION"
	CodeUpdateVersion  DiagnosticCode = "UPDATE_VERSION"
)

// CurrentVersion is the version string inserted/updated by the version
// code actions.
const CurrentVersion = "2"

// Diagnostic is the core's protocol-agnostic diagnostic shape; server/
// translates these into glsp protocol diagnostics.
type Diagnostic struct {
	Range    Range
	Message  string
	Code     DiagnosticCode
	Severity Severity
}

// Diagnostics converts in-band parse errors plus the version-control
// checks into a diagnostics list (spec.md §6 "Feedback to
// collaborators"). doc supplies the Range conversion for each error's
// byte span.
func (t *SyntaxTree) Diagnostics(doc *Document) []Diagnostic {
	var out []Diagnostic
	for _, e := range t.Errors {
		r := doc.RangeBetween(e.Start, e.End)
		if r == nil {
			continue
		}
		out = append(out, Diagnostic{Range: *r, Message: e.Message, Severity: SeverityError})
	}
	out = append(out, t.VersionDiagnostics(doc)...)
	return out
}

// VersionDiagnostics implements spec.md §8 scenario 4: a missing
// $version control statement produces DEFINE_VERSION; one whose value
// isn't the current version string produces UPDATE_VERSION.
func (t *SyntaxTree) VersionDiagnostics(doc *Document) []Diagnostic {
	ctrl, ok := findVersionControl(t.Statements)
	if !ok {
		return []Diagnostic{{
			Range:    Range{Start: Position{}, End: Position{}},
			Message:  "missing $version control statement",
			Code:     CodeDefineVersion,
			Severity: SeverityWarning,
		}}
	}

	current, ok := versionValue(ctrl)
	if ok && current == CurrentVersion {
		return nil
	}

	r := doc.RangeBetween(ctrl.Start, ctrl.End)
	if r == nil {
		return nil
	}
	return []Diagnostic{{
		Range:    *r,
		Message:  "outdated $version control statement",
		Code:     CodeUpdateVersion,
		Severity: SeverityWarning,
	}}
}

func findVersionControl(stmts []Statement) (*Control, bool) {
	for _, s := range stmts {
		if c, ok := s.(*Control); ok && c.Key == "version" {
			return c, true
		}
	}
	return nil, false
}

func versionValue(c *Control) (string, bool) {
	str, ok := c.Value.(*Str)
	if !ok {
		return "", false
	}
	return str.Value, true
}

// VersionCodeActionEdit computes the text edit for applying a
// DEFINE_VERSION or UPDATE_VERSION code action, purely from the
// current document (spec.md §6): DEFINE_VERSION inserts at the
// document origin; UPDATE_VERSION replaces the existing control
// statement's range.
func VersionCodeActionEdit(tree *SyntaxTree, doc *Document) (Range, string, bool) {
	ctrl, ok := findVersionControl(tree.Statements)
	if !ok {
		return Range{Start: Position{}, End: Position{}},
			"$version: \"" + CurrentVersion + "\"\n\n", true
	}
	r := doc.RangeBetween(ctrl.Start, ctrl.End)
	if r == nil {
		return Range{}, "", false
	}
	return *r, "$version: \"" + CurrentVersion + "\"", true
}

// ShapeAt finds the name of the shape whose ShapeDef (directly, or via
// an enclosing Block) covers pos, built entirely out of StatementView
// plus a backward walk over the flat statement sequence (spec.md's
// supplemented §4 operation).
func (t *SyntaxTree) ShapeAt(pos Offset) (string, bool) {
	view := NewStatementView(t)
	idx, ok := view.StatementIndexAt(pos)
	if !ok {
		return "", false
	}
	for i := idx; i >= 0; i-- {
		if sd, ok := t.Statements[i].(*ShapeDef); ok {
			if i == idx {
				return sd.Name, true
			}
			if sd.HasBody && i+1 < len(t.Statements) {
				if blk, ok := t.Statements[i+1].(*Block); ok {
					if pos >= blk.Start && pos < blk.End {
						return sd.Name, true
					}
				}
			}
		}
	}
	return "", false
}
