package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cppnom/internal/tokenizer"
)

// ConvertTokenizeError turns a tokenize failure into LSP diagnostics for
// IDE display. The tokenizer halts on the first offense, so there is at
// most one diagnostic per document.
func ConvertTokenizeError(err error) []protocol.Diagnostic {
	if err == nil {
		return nil
	}

	tokErr, ok := err.(*tokenizer.Error)
	if !ok {
		return nil
	}

	line := tokErr.Line
	if line < 1 {
		line = 1
	}
	col := tokErr.Column
	if col < 1 {
		col = 1
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(line - 1),
				Character: uint32(col - 1),
			},
			End: protocol.Position{
				Line:      uint32(line - 1),
				Character: uint32(col),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("cppnom"),
		Message:  tokErr.Message,
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
