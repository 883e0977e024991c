package tokenizer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"cppnom/internal/rebuild"
	"cppnom/internal/tokenizer"
)

const sample = `#include <cstdio>

// entry point
int main(int argc, char** argv)
{
	const char* msg = "hello\tworld";
	unsigned n = 0xFF + 10ul;
	/* block
	   comment */
	if (argc > 1) {
		printf("%s %c\n", msg, 'x');
	}
	return 0;
}
`

func TestRoundTripUnix(t *testing.T) {
	data := []byte(sample)
	res, err := tokenizer.Tokenize(data, 0)
	require.NoError(t, err)

	rebuilt := rebuild.Rebuild(res)
	if diff := cmp.Diff(string(data), string(rebuilt)); diff != "" {
		t.Errorf("rebuild mismatch (-want +got):\n%s", diff)
	}

	verdict, line := rebuild.Compare(data, rebuilt)
	require.Equal(t, rebuild.Equal, verdict)
	require.Equal(t, 0, line)
}

func TestRoundTripDos(t *testing.T) {
	data := []byte("#define X 1\r\nint y = X;\r\n")
	res, err := tokenizer.Tokenize(data, 0)
	require.NoError(t, err)
	require.Equal(t, 2, res.DosNewlines)

	rebuilt := rebuild.Rebuild(res)
	if diff := cmp.Diff(string(data), string(rebuilt)); diff != "" {
		t.Errorf("rebuild mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripWithContinuations(t *testing.T) {
	data := []byte("#define MAX(a, b) \\\n\t((a) > (b) ? (a) : (b))\n\nlong v = MAX(1, 2);\n")
	res, err := tokenizer.Tokenize(data, 0)
	require.NoError(t, err)

	rebuilt := rebuild.Rebuild(res)
	if diff := cmp.Diff(string(data), string(rebuilt)); diff != "" {
		t.Errorf("rebuild mismatch (-want +got):\n%s", diff)
	}
}

func TestRoundTripBOM(t *testing.T) {
	data := []byte("\xef\xbb\xbfint x;\n")
	res, err := tokenizer.Tokenize(data, 0)
	require.NoError(t, err)
	require.True(t, res.HasUTF8BOM)

	rebuilt := rebuild.Rebuild(res)
	require.Equal(t, string(data), string(rebuilt))
}

// A mixed-style file rebuilds with a single newline style: the only
// documented loss of information.
func TestRoundTripMixedNewlines(t *testing.T) {
	data := []byte("int a;\nint b;\r\n")
	res, err := tokenizer.Tokenize(data, 0)
	require.NoError(t, err)

	rebuilt := rebuild.Rebuild(res)
	verdict, line := rebuild.Compare(data, rebuilt)
	require.Equal(t, rebuild.MostlyEqual, verdict)
	require.Equal(t, 0, line)
}

func TestCoverage(t *testing.T) {
	// Every input byte lands in exactly one lexeme, modulo the newlines
	// the rebuilder re-inserts.
	data := []byte(sample)
	res, err := tokenizer.Tokenize(data, 0)
	require.NoError(t, err)

	total := 0
	for _, tok := range res.Tokens {
		total += len(tok.Lexeme)
	}
	newlines := res.UnixNewlines + res.DosNewlines + res.MacNewlines
	require.Equal(t, len(data), total+newlines)
}
