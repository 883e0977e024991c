package tokenizer

import (
	"fmt"
	"strings"
)

// context holds all per-tokenization state: the byte cursor over the input,
// the current state machine state, the pending token bounds, the stitching
// label and the token pool. There is no shared state, so tokenizations of
// disjoint inputs can run in parallel.
type context struct {
	src  string // input after BOM strip; lexemes slice into it
	c    byte   // current character, 0 past the last byte
	prev byte

	state state

	index       int // position of the current character, -1 before the first read
	tokenStart  int // position of the first character of the pending token
	tokenLine   int // line number when the pending token started
	lineStart   int // position of the current line, for error reporting
	lineCount   int // current line number, 1-based
	multi       Multi
	insideMacro bool

	tokens *tokenPool

	errMsg    strings.Builder
	errorLine int
	errorCol  int

	unixNL, dosNL, macNL int
	hasUTF8BOM           bool
}

const utf8BOM = "\xef\xbb\xbf"

func newContext(content string) *context {
	ctx := &context{
		src:        content,
		state:      stateNewLine,
		index:      -1,
		tokenStart: 0,
		tokenLine:  1,
		lineStart:  0,
		lineCount:  1,
		multi:      Single,
		tokens:     newTokenPool(),
	}
	if strings.HasPrefix(ctx.src, utf8BOM) {
		ctx.src = ctx.src[len(utf8BOM):]
		ctx.hasUTF8BOM = true
	}
	return ctx
}

// next advances to the next logical character. It reports false once the
// end-of-input sentinel has been handed out and consumed, and performs the
// preprocessor's work on backslash-newlines along the way.
func (ctx *context) next() bool {
	ctx.index++
	ctx.prev = ctx.c

	// Loop until a character the state machine should see.
	for {
		if ctx.index >= len(ctx.src) {
			if ctx.index > len(ctx.src) {
				return false
			}
			// 0 makes every state flush its pending token
			ctx.c = 0
			break
		}
		if !ctx.nextLegitChar() {
			break
		}
	}
	return true
}

// nextLegitChar reads the byte at the cursor, folding \r\n and \r into \n
// and intercepting backslash-newline splices. It reports true when the
// cursor moved past a splice and another read is needed.
func (ctx *context) nextLegitChar() bool {
	if ctx.c == '\n' {
		ctx.lineStart = ctx.index
	}
	ctx.c = ctx.src[ctx.index]

	// The state machine never sees \r, only \n
	switch ctx.c {
	case '\n':
		ctx.lineCount++
		ctx.unixNL++
	case '\r':
		if ctx.index+1 < len(ctx.src) && ctx.src[ctx.index+1] == '\n' {
			ctx.index++
			ctx.c = '\n'
			ctx.lineCount++
			ctx.dosNL++
		} else {
			ctx.c = '\n'
			ctx.lineCount++
			ctx.macNL++
		}
	case '\\':
		// Backslash-newline is not exposed either: it splits the pending
		// token and becomes a dedicated token of its own.
		if ctx.index+1 < len(ctx.src) {
			if nextC := ctx.src[ctx.index+1]; nextC == '\r' || nextC == '\n' {
				ctx.spliceLine(nextC)
				return true
			}
		}
	}
	return false
}

// spliceLine handles a backslash followed by a newline: flush the pending
// token as a multi-part fragment, emit the 1-byte backslash-newline token,
// consume the newline bytes and restart a fragment on the next line.
func (ctx *context) spliceLine(nextC byte) {
	if ctx.state != stateIdle && ctx.state != stateNewLine {
		ctx.pushTokenMultiline(NONE)
	} else if ctx.state == stateIdle {
		ctx.state = stateNewLine
	}

	ctx.tokens.push(Token{
		Type:   BACKSLASH_NEWLINE,
		Line:   ctx.lineCount,
		Off:    ctx.index,
		Lexeme: ctx.src[ctx.index : ctx.index+1],
		Multi:  ctx.multi,
	})

	if nextC == '\r' {
		if ctx.index+2 < len(ctx.src) && ctx.src[ctx.index+2] == '\n' {
			ctx.dosNL++
			ctx.index += 3
		} else {
			ctx.macNL++
			ctx.index += 2
		}
	} else {
		ctx.unixNL++
		ctx.index += 2
	}

	ctx.lineStart = ctx.index
	ctx.lineCount++
	ctx.newToken()
}

func (ctx *context) newToken() {
	ctx.tokenStart = ctx.index
	ctx.tokenLine = ctx.lineCount
}

func (ctx *context) newState(s state) {
	if ctx.state == stateIdle || ctx.state == stateNewLine {
		ctx.newToken()
	}
	if s == stateMacro {
		ctx.insideMacro = true
	}
	ctx.state = s
}

// pendingWithCurrent returns the pending token text including the current
// character. Past the end of input the sentinel is appended so table
// lookups fail cleanly.
func (ctx *context) pendingWithCurrent() string {
	if ctx.index < len(ctx.src) {
		return ctx.src[ctx.tokenStart : ctx.index+1]
	}
	return ctx.src[ctx.tokenStart:ctx.index] + "\x00"
}

// convertTokenMacro reclassifies tokens found while scanning a macro.
// Macros are hard to deal with: apart from comments, nothing inside them is
// parsed, and the ambiguous divide symbol could otherwise surface operator
// tokens out of a #define body. Everything except comments folds back into
// macro fragments.
func (ctx *context) convertTokenMacro(typ TokenType) TokenType {
	if !ctx.insideMacro {
		return typ
	}
	if typ == COMMENT_LINE || typ == COMMENT_BLOCK {
		return typ
	}
	if typ == MACRO {
		// End of macro
		ctx.insideMacro = false
		return typ
	}
	return MACRO
}

// pushToken ends the pending C++ token. wantsCurrentChar includes the
// current character in the lexeme, for tokens with an end tag (closing
// quote, */, unambiguous operator). The returned state tells the caller
// what to run next.
func (ctx *context) pushToken(typ TokenType, wantsCurrentChar bool) state {
	typ = ctx.convertTokenMacro(typ)

	// The fragments emitted so far may still be untyped
	if ctx.multi != Single {
		ctx.fixPrevTokenTypes(typ)
	}

	ctx.pushTokenNoStateChange(typ, wantsCurrentChar)
	ctx.tokenStart = -1

	if !ctx.insideMacro {
		ctx.state = stateIdle
		ctx.multi = Single
		ctx.fixMacroTokenMulti()
		return ctx.state
	}

	switch typ {
	case COMMENT_BLOCK, MACRO:
		// Continue macro parsing after the comment or merged fragment
		ctx.state = stateMacro
		ctx.multi = Next
		ctx.tokenStart = ctx.index
		ctx.tokenLine = ctx.lineCount
		if wantsCurrentChar {
			// The current char was consumed, the next fragment begins after
			ctx.tokenStart++
		}
	case COMMENT_LINE:
		// A line comment runs to the end of the line, and so does the macro
		ctx.insideMacro = false
		ctx.state = stateIdle
		ctx.multi = Single
		ctx.fixMacroTokenMulti()
	default:
		ctx.state = stateIdle
	}
	return ctx.state
}

// pushTokenMultiline flushes the pending token as an incomplete fragment
// and starts the next fragment of the same C++ token. With NONE the final
// type is back-propagated when the last fragment is pushed.
func (ctx *context) pushTokenMultiline(typ TokenType) {
	if ctx.multi == Single {
		ctx.multi = First
	} else if ctx.multi == First {
		ctx.multi = Next
	}
	ctx.pushTokenNoStateChange(typ, false)

	// Continue parsing the current C++ token
	ctx.newToken()

	if ctx.multi == First {
		ctx.multi = Next
	}
}

// pushTokenNoStateChange stores the pending token without touching the
// machine state.
func (ctx *context) pushTokenNoStateChange(typ TokenType, wantsCurrentChar bool) {
	start := ctx.tokenStart
	length := ctx.index - start + 1
	if !wantsCurrentChar {
		length--
	}

	// Newlines around a token belong to no token
	for length > 0 && (ctx.src[start+length-1] == '\n' || ctx.src[start+length-1] == '\r') {
		length--
	}
	for length > 0 && (ctx.src[start] == '\n' || ctx.src[start] == '\r') {
		start++
		length--
	}

	if typ == MACRO {
		if length == 0 {
			// A comment inside a macro restarts macro parsing and may leave
			// an empty fragment behind. Do not store it.
			return
		}
		if ctx.tryToMergeMacro(length) {
			return
		}
	}

	if typ == IDENTIFIER && isKeyword(ctx.src[start:start+length]) {
		typ = KEYWORD
	}

	ctx.tokens.push(Token{
		Type:   typ,
		Line:   ctx.tokenLine,
		Off:    start,
		Lexeme: ctx.src[start : start+length],
		Multi:  ctx.multi,
	})
}

// tryToMergeMacro extends the previous token instead of pushing a new one
// when both are macro fragments of the same split macro. The fragments are
// adjacent in the input, so growing the previous lexeme covers the new one.
func (ctx *context) tryToMergeMacro(length int) bool {
	prev := ctx.tokens.last()
	if prev == nil || prev.Type != MACRO {
		return false
	}
	if (prev.Multi == First || prev.Multi == Next) && ctx.multi == Next {
		prev.Lexeme = ctx.src[prev.Off : prev.Off+len(prev.Lexeme)+length]
		return true
	}
	return false
}

// fixMacroTokenMulti downgrades a lone First macro fragment to Single when
// the macro ended without further splits.
func (ctx *context) fixMacroTokenMulti() {
	prev := ctx.tokens.last()
	if prev == nil || prev.Type != MACRO {
		return
	}
	if prev.Multi == First {
		prev.Multi = Single
	}
}

// fixPrevTokenTypes back-propagates the final type onto the untyped
// fragments of the C++ token being completed.
func (ctx *context) fixPrevTokenTypes(typ TokenType) {
	for i := ctx.tokens.len() - 1; i >= 0; i-- {
		tok := ctx.tokens.at(i)
		if tok.Multi == Single {
			break
		}
		if tok.Type == NONE {
			tok.Type = typ
		}
	}
}

// reportError records the offending position and formats the error report:
// state, character, the source line and a caret column marker.
func (ctx *context) reportError() {
	if ctx.c == '\n' {
		// The newline was already counted, the offense is on the line before
		ctx.lineCount--
	}
	ctx.errorLine = ctx.lineCount
	ctx.errorCol = ctx.index - ctx.lineStart + 1

	ctx.errMsg.WriteString("state: ")
	ctx.errMsg.WriteString(ctx.state.String())
	ctx.errMsg.WriteString("\n")

	glyph := ctx.c
	if !isPrintable(glyph) {
		glyph = '?'
	}
	fmt.Fprintf(&ctx.errMsg, "char: '%c' u+%04x\n", glyph, ctx.c)

	// The source line the error is on
	end := ctx.index
	for end < len(ctx.src) && ctx.src[end] != '\n' {
		end++
	}
	line := ctx.src[ctx.lineStart:end]
	ctx.errMsg.WriteString(line)
	ctx.errMsg.WriteString("\n")

	// Tabs stay tabs so the caret aligns in a terminal
	caretAt := ctx.index - ctx.lineStart
	for i := 0; i < caretAt; i++ {
		if i < len(line) && line[i] == '\t' {
			ctx.errMsg.WriteByte('\t')
		} else {
			ctx.errMsg.WriteByte('~')
		}
	}
	ctx.errMsg.WriteString("^\n")
}
