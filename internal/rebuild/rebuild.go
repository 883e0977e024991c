// Package rebuild reconstructs a source file from its token stream and
// verifies the reconstruction against the original bytes. Newline style is
// the one piece of information tokenization does not keep per line, so the
// whole file is rewritten with a single style: CRLF when CRLF endings
// outnumber LF endings, LF otherwise. Lone CR is never emitted.
package rebuild

import (
	"bytes"

	"cppnom/internal/tokenizer"
)

const utf8BOM = "\xef\xbb\xbf"

// Rebuild concatenates the token lexemes in order, emitting a newline
// whenever a token starts on a later line than the ones written so far.
// CRLF is used when the original had more CRLF than LF line endings.
func Rebuild(res *tokenizer.Result) []byte {
	newline := "\n"
	if res.DosNewlines > res.UnixNewlines {
		newline = "\r\n"
	}

	var buf bytes.Buffer
	if res.HasUTF8BOM {
		buf.WriteString(utf8BOM)
	}

	line := 1
	for _, tok := range res.Tokens {
		for ; line <= tok.Line; line++ {
			if line != 1 {
				buf.WriteString(newline)
			}
		}
		buf.WriteString(tok.Lexeme)
	}
	return buf.Bytes()
}

// Verdict is the outcome of comparing an original file with its rebuild.
type Verdict int

const (
	Equal        Verdict = iota // strictly the same bytes
	MostlyEqual                 // only newline characters differ
	Different                   // contents differ
)

func (v Verdict) String() string {
	switch v {
	case Equal:
		return "equal"
	case MostlyEqual:
		return "mostly equal"
	case Different:
		return "different"
	}
	return ""
}

// nextLine measures the first line of buf: contentLen is the line without
// its terminator, totalLen includes it. It reports done when buf is empty.
func nextLine(buf []byte) (contentLen, totalLen int, done bool) {
	if len(buf) == 0 {
		return 0, 0, true
	}
	i := 0
	for i < len(buf) && buf[i] != '\r' && buf[i] != '\n' {
		i++
	}
	contentLen = i
	switch {
	case i == len(buf):
		totalLen = contentLen
	case buf[i] == '\r' && i+1 < len(buf) && buf[i+1] == '\n':
		totalLen = contentLen + 2
	default:
		totalLen = contentLen + 1
	}
	return contentLen, totalLen, false
}

// Compare checks an original file against its rebuild line by line. It
// returns the verdict and, for a content difference, the 1-based line of
// the first mismatch (0 otherwise).
func Compare(original, rebuilt []byte) (Verdict, int) {
	verdict := Equal
	ori := original
	reb := rebuilt

	lineNum := 0
	var oriDone, rebDone bool
	for {
		lineNum++

		var oriLen1, oriLen2, rebLen1, rebLen2 int
		oriLen1, oriLen2, oriDone = nextLine(ori)
		rebLen1, rebLen2, rebDone = nextLine(reb)
		if oriDone || rebDone {
			break
		}

		if oriLen1 != rebLen1 || !bytes.Equal(ori[:oriLen1], reb[:rebLen1]) {
			return Different, lineNum
		}
		if oriLen2 != rebLen2 || !bytes.Equal(ori[oriLen1:oriLen2], reb[rebLen1:rebLen2]) {
			// Same content, different newline characters
			verdict = MostlyEqual
		}

		ori = ori[oriLen2:]
		reb = reb[rebLen2:]
	}

	if oriDone != rebDone {
		return Different, 0
	}
	return verdict, 0
}
