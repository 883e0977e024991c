package lsp

import (
	"cppnom/internal/tokenizer"
)

// SemanticToken is a single LSP semantic token entry. Line and StartChar
// are 0-based; TokenType indexes into SemanticTokenTypes.
type SemanticToken struct {
	Line      uint32
	StartChar uint32
	Length    uint32
	TokenType int
}

// semanticType maps a physical token type onto the legend. Whitespace and
// empty lines carry no highlighting information and are skipped.
func semanticType(t tokenizer.TokenType) (int, bool) {
	switch t {
	case tokenizer.COMMENT_LINE, tokenizer.COMMENT_BLOCK:
		return indexOf("comment", SemanticTokenTypes), true
	case tokenizer.STRING_LITERAL, tokenizer.CHARACTER_LITERAL:
		return indexOf("string", SemanticTokenTypes), true
	case tokenizer.INTEGER_LITERAL:
		return indexOf("number", SemanticTokenTypes), true
	case tokenizer.KEYWORD:
		return indexOf("keyword", SemanticTokenTypes), true
	case tokenizer.OPERATOR_OR_PUNCTUATOR:
		return indexOf("operator", SemanticTokenTypes), true
	case tokenizer.MACRO, tokenizer.BACKSLASH_NEWLINE:
		return indexOf("macro", SemanticTokenTypes), true
	case tokenizer.IDENTIFIER:
		return indexOf("variable", SemanticTokenTypes), true
	}
	return 0, false
}

// collectSemanticTokens converts physical tokens to LSP semantic tokens.
// Every physical token sits on a single line (splits happen exactly at
// newlines), so each one maps to one entry.
func collectSemanticTokens(content string, toks []tokenizer.Token) []SemanticToken {
	offsets := lineOffsets(content)

	var tokens []SemanticToken
	for _, tok := range toks {
		typ, ok := semanticType(tok.Type)
		if !ok || len(tok.Lexeme) == 0 {
			continue
		}
		if tok.Line-1 >= len(offsets) {
			continue
		}
		tokens = append(tokens, SemanticToken{
			Line:      uint32(tok.Line - 1),
			StartChar: uint32(tok.Off - offsets[tok.Line-1]),
			Length:    uint32(len(tok.Lexeme)),
			TokenType: typ,
		})
	}
	return tokens
}

// lineOffsets returns the byte offset of every line start, for the same
// newline conventions the tokenizer normalizes: \n, \r\n and lone \r.
func lineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			offsets = append(offsets, i+1)
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// indexOf returns the index of a string in a slice, or 0 if not found.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
