package tokenizer

import "strings"

// The C++11 reserved words. Symbol-based operators with keyword spellings
// (new, delete, ...) tokenize as keywords, not operators.
var keywords = []string{
	"alignof", "asm", "auto", "bool",
	"break", "case", "catch", "char",
	"char16_t", "char32_t", "class", "const",
	"constexpr", "const_cast", "continue", "decltype",
	"default", "delete", "do", "double",
	"dynamic_cast", "else", "enum", "explicit",
	"export", "extern", "false", "float",
	"for", "friend", "goto", "if",
	"inline", "int", "long", "mutable",
	"namespace", "new", "noexcept", "nullptr",
	"operator", "private", "protected", "public",
	"register", "reinterpret_cast", "return", "short",
	"signed", "sizeof", "static", "static_assert",
	"static_cast", "struct", "switch", "template",
	"this", "thread_local", "throw", "true",
	"try", "typedef", "typeid", "typename",
	"union", "unsigned", "using", "virtual",
	"void", "volatile", "wchar_t", "while",
}

var keywordSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		m[kw] = struct{}{}
	}
	return m
}()

func isKeyword(s string) bool {
	_, ok := keywordSet[s]
	return ok
}

// Keywords returns the reserved-word table, e.g. for completion lists.
func Keywords() []string {
	out := make([]string, len(keywords))
	copy(out, keywords)
	return out
}

// Operators and punctuators, including the digraphs <: :> <% %> %: %:%:
// and the preprocessor markers # and ##.
var operators = []string{
	"{", "}", "[", "]", "#", "##", "(", ")",
	"<:", ":>", "<%", "%>", "%:", "%:%:", ";", ":", "...",
	"?", "::", ".", ".*",
	"+", "-", "*", "/", "%", "^", "&", "|", "~",
	"!", "=", "<", ">", "+=", "-=", "*=", "/=", "%=",
	"^=", "&=", "|=", "<<", ">>", ">>=", "<<=", "==", "!=",
	"<=", ">=", "&&", "||", "++", "--", ",", "->*", "->",
}

// Integer literal suffixes. The set is not case-symmetric: lowercase-first
// mixes like lU are not accepted.
var integerSuffixes = []string{
	"l", "ll", "u", "ul", "ull",
	"L", "LL", "U", "UL", "ULL",
	"Ul", "Ull",
}

// matchResult is the outcome of testing a candidate against a string table
// by prefix.
type matchResult int

const (
	matchNone  matchResult = iota // the candidate can match no entry
	matchMaybe                    // the candidate is a proper prefix of one or more entries
	matchEqual                    // the candidate equals exactly one entry and extends none
)

// matchPrefix compares a candidate against one table entry: matchEqual on
// exact equality, matchMaybe when the candidate is a proper prefix of the
// entry, matchNone otherwise.
func matchPrefix(entry, candidate string) matchResult {
	if !strings.HasPrefix(entry, candidate) {
		return matchNone
	}
	if len(entry) > len(candidate) {
		return matchMaybe
	}
	return matchEqual
}

// matchOneOf tests a candidate against a whole table. The result is
// matchEqual only when the candidate equals an entry and cannot be extended
// into a longer one, so callers can munch greedily on matchMaybe.
func matchOneOf(candidate string, table []string) matchResult {
	maybe, equal := 0, 0
	for _, entry := range table {
		switch matchPrefix(entry, candidate) {
		case matchMaybe:
			maybe++
		case matchEqual:
			equal++
		}
	}
	if maybe == 0 && equal == 0 {
		return matchNone
	}
	if maybe > 0 || equal > 1 {
		return matchMaybe
	}
	return matchEqual
}

func matchOperator(candidate string) matchResult {
	return matchOneOf(candidate, operators)
}

func matchIntegerSuffix(candidate string) matchResult {
	return matchOneOf(candidate, integerSuffixes)
}

func isIntegerSuffixBegin(c byte) bool {
	return matchIntegerSuffix(string(c)) >= matchMaybe
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isOctDigit(c byte) bool {
	return '0' <= c && c <= '7'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isIdentifierCharNonDigit(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isIdentifierChar(c byte) bool {
	return isIdentifierCharNonDigit(c) || isDigit(c)
}

// isSimpleEscape reports whether c forms a simple escape sequence after a
// backslash inside a string or character literal. \e is a GCC extension.
func isSimpleEscape(c byte) bool {
	return strings.IndexByte(`'"?\abfnrtve`, c) >= 0
}

func isPrintable(c byte) bool {
	return 32 <= c && c <= 126
}
