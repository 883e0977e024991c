package tokenizer

import "testing"

func TestMultilineStringLiteral(t *testing.T) {
	tokens := scan(t, "\"a\nb\"")
	assertTokens(t, tokens, []wantToken{
		{STRING_LITERAL, `"a`, 1, First},
		{STRING_LITERAL, `b"`, 2, Next},
	})
}

func TestMultilineBlockComment(t *testing.T) {
	tokens := scan(t, "/* a\n b */")
	assertTokens(t, tokens, []wantToken{
		{COMMENT_BLOCK, "/* a", 1, First},
		{COMMENT_BLOCK, " b */", 2, Next},
	})
}

func TestBlockCommentOverThreeLines(t *testing.T) {
	tokens := scan(t, "/*a\nb\nc*/")
	assertTokens(t, tokens, []wantToken{
		{COMMENT_BLOCK, "/*a", 1, First},
		{COMMENT_BLOCK, "b", 2, Next},
		{COMMENT_BLOCK, "c*/", 3, Next},
	})
}

func TestMacroWithContinuation(t *testing.T) {
	tokens := scan(t, "#define F(x) \\\n x+1\n")
	assertTokens(t, tokens, []wantToken{
		{MACRO, "#define F(x) ", 1, First},
		{BACKSLASH_NEWLINE, "\\", 1, Next},
		{MACRO, " x+1", 2, Next},
		{EMPTY_LINE, "", 3, Single},
	})
}

func TestMacroWholeLine(t *testing.T) {
	tokens := scan(t, "#include <stdio.h>\n")
	assertTokens(t, tokens, []wantToken{
		{MACRO, "#include <stdio.h>", 1, Single},
		{EMPTY_LINE, "", 2, Single},
	})
}

func TestMacroSlashMergesBack(t *testing.T) {
	// The divide symbol is ambiguous inside a macro: the fragments it
	// causes merge back and the lone first part collapses to single.
	tokens := scan(t, "#define D a/b\n")
	assertTokens(t, tokens, []wantToken{
		{MACRO, "#define D a/b", 1, Single},
		{EMPTY_LINE, "", 2, Single},
	})
}

func TestMacroWithBlockComment(t *testing.T) {
	tokens := scan(t, "#define G /* c */ 2\n")
	assertTokens(t, tokens, []wantToken{
		{MACRO, "#define G ", 1, First},
		{COMMENT_BLOCK, "/* c */", 1, Next},
		{MACRO, " 2", 1, Next},
		{EMPTY_LINE, "", 2, Single},
	})
}

func TestMacroWithLineComment(t *testing.T) {
	// A line comment runs to the end of the line and so ends the macro
	tokens := scan(t, "#define E 1 // note\n")
	assertTokens(t, tokens, []wantToken{
		{MACRO, "#define E 1 ", 1, First},
		{COMMENT_LINE, "// note", 1, Next},
		{EMPTY_LINE, "", 2, Single},
	})
}

func TestBackslashNewlineSplitsSpace(t *testing.T) {
	tokens := scan(t, "ab \\\ncd")
	assertTokens(t, tokens, []wantToken{
		{IDENTIFIER, "ab", 1, Single},
		{SPACE, " ", 1, First},
		{BACKSLASH_NEWLINE, "\\", 1, Next},
		{SPACE, "", 2, Next},
		{IDENTIFIER, "cd", 2, Single},
	})
}

func TestBackslashNewlineSplitsIdentifier(t *testing.T) {
	// The logical token spells a keyword, but each fragment is classified
	// on its own lexeme, so both stay identifiers.
	tokens := scan(t, "in\\\nt;")
	assertTokens(t, tokens, []wantToken{
		{IDENTIFIER, "in", 1, First},
		{BACKSLASH_NEWLINE, "\\", 1, Next},
		{IDENTIFIER, "t", 2, Next},
		{OPERATOR_OR_PUNCTUATOR, ";", 2, Single},
	})
}

func TestBackslashNewlineAtLineStart(t *testing.T) {
	tokens := scan(t, "x\n\\\ny")
	assertTokens(t, tokens, []wantToken{
		{IDENTIFIER, "x", 1, Single},
		{BACKSLASH_NEWLINE, "\\", 2, Single},
		{IDENTIFIER, "y", 3, Single},
	})
}

func TestBackslashNewlineInsideString(t *testing.T) {
	tokens := scan(t, "\"a\\\nb\"")
	assertTokens(t, tokens, []wantToken{
		{STRING_LITERAL, `"a`, 1, First},
		{BACKSLASH_NEWLINE, "\\", 1, Next},
		{STRING_LITERAL, `b"`, 2, Next},
	})
}

func TestBackslashNewlineDosStyle(t *testing.T) {
	res, err := Tokenize([]byte("a\\\r\nb"), 0)
	if err != nil {
		t.Fatalf("unexpected tokenize error: %v", err)
	}
	assertTokens(t, res.Tokens, []wantToken{
		{IDENTIFIER, "a", 1, First},
		{BACKSLASH_NEWLINE, "\\", 1, Next},
		{IDENTIFIER, "b", 2, Next},
	})
	if res.DosNewlines != 1 {
		t.Errorf("expected 1 dos newline, got %d", res.DosNewlines)
	}
}

func TestMultiRunWellFormed(t *testing.T) {
	input := "#define A(x) \\\n (x) /* why \n not */ + 1\nint main() {}\n"
	res, err := Tokenize([]byte(input), 0)
	if err != nil {
		t.Fatalf("unexpected tokenize error: %v", err)
	}
	inRun := false
	for i, tok := range res.Tokens {
		if tok.Type == NONE {
			t.Errorf("token %d: internal NONE type leaked", i)
		}
		switch tok.Multi {
		case Single:
			inRun = false
		case First:
			if inRun {
				t.Errorf("token %d: First inside a run", i)
			}
			inRun = true
		case Next:
			if !inRun {
				t.Errorf("token %d: Next outside a run", i)
			}
		}
	}
}
