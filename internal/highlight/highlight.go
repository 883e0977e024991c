// Package highlight prints a token stream to a terminal, one color per
// token type, with a line-number gutter. It is the syntax-highlighting
// consumer the tokenizer exists for.
package highlight

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"cppnom/internal/tokenizer"
)

// One color per token type. Identifiers stay in the terminal's default
// color, like the surrounding prose of the file.
var tokenColors = map[tokenizer.TokenType]*color.Color{
	tokenizer.SPACE:                  color.RGB(70, 70, 120),
	tokenizer.EMPTY_LINE:             color.RGB(70, 120, 0),
	tokenizer.COMMENT_LINE:           color.RGB(50, 255, 50),
	tokenizer.COMMENT_BLOCK:          color.RGB(100, 200, 100),
	tokenizer.KEYWORD:                color.RGB(10, 150, 255),
	tokenizer.OPERATOR_OR_PUNCTUATOR: color.RGB(200, 100, 200),
	tokenizer.MACRO:                  color.RGB(200, 230, 0),
	tokenizer.BACKSLASH_NEWLINE:      color.RGB(255, 255, 255),
	tokenizer.STRING_LITERAL:         color.RGB(200, 90, 90),
	tokenizer.CHARACTER_LITERAL:      color.RGB(200, 150, 90),
	tokenizer.INTEGER_LITERAL:        color.RGB(100, 100, 50),
}

// Fprint writes the tokens with a "%3d: " gutter per line. In debug mode
// every lexeme is wrapped in «» and split C++ tokens carry a subscript
// marker showing the 1:n mapping.
func Fprint(w io.Writer, tokens []tokenizer.Token, debug bool) {
	line := 1
	for _, tok := range tokens {
		for ; line <= tok.Line; line++ {
			if line != 1 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%3d: ", line)
		}

		text := tok.Lexeme
		if debug {
			marker := ""
			switch tok.Multi {
			case tokenizer.First:
				marker = "₁"
			case tokenizer.Next:
				marker = "ₙ"
			}
			text = "«" + tok.Lexeme + "»" + marker
		}

		if c := tokenColors[tok.Type]; c != nil {
			c.Fprint(w, text)
		} else {
			fmt.Fprint(w, text)
		}
	}
	fmt.Fprintln(w)
}
