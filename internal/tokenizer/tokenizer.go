// Package tokenizer is a lossless lexical analyzer for C++ source text. It
// keeps preprocessor directives, comments, whitespace runs, empty lines and
// backslash-newlines as tokens, so the original file can be rebuilt from
// the token stream. The only loss of information concerns files with mixed
// newline styles.
//
// A C++ token may be represented by several physical tokens: a block
// comment over multiple lines, a string literal spanning a newline, a
// comment inside a macro, or any token interrupted by a backslash-newline.
// The Multi field links the parts back together.
package tokenizer

// Tokenize runs the lexer over a C++ translation unit. The input must be
// syntactically valid C++ and macro usage must be parsable without being
// expanded. options is reserved and must be 0.
//
// On failure the returned Result still contains every token emitted before
// the offending character, and the error is an *Error carrying the line and
// the formatted report. Token lexemes are slices of a single internal copy
// of content, so the tokens stay valid after the caller releases content.
func Tokenize(content []byte, options int) (*Result, error) {
	res := &Result{}
	if content == nil {
		return res, &Error{Message: "bad content address"}
	}
	if options != 0 {
		return res, &Error{Message: "bad options"}
	}

	ctx := newContext(string(content))
	res.HasUTF8BOM = ctx.hasUTF8BOM

	failed := false
	for ctx.next() {
		if !ctx.dispatch() {
			failed = true
			break
		}
	}

	res.Tokens = ctx.tokens.detach()
	res.UnixNewlines = ctx.unixNL
	res.DosNewlines = ctx.dosNL
	res.MacNewlines = ctx.macNL

	if failed {
		return res, &Error{
			Line:    ctx.errorLine,
			Column:  ctx.errorCol,
			Message: ctx.errMsg.String(),
		}
	}
	return res, nil
}
