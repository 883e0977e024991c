// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"cppnom/internal/highlight"
	"cppnom/internal/rebuild"
	"cppnom/internal/tokenizer"
)

func main() {
	args := os.Args[1:]
	printTokens := false
	debug := false
	for len(args) > 0 && strings.HasPrefix(args[0], "--") {
		switch args[0] {
		case "--tokens":
			printTokens = true
		case "--debug":
			printTokens = true
			debug = true
		default:
			fmt.Fprintf(os.Stderr, "unknown option %s\n", args[0])
			os.Exit(1)
		}
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Println("Usage: cppnom-cli [--tokens] [--debug] <file>")
		os.Exit(1)
	}

	startTime := time.Now()
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	res, tokErr := tokenizer.Tokenize(data, 0)
	if tokErr != nil {
		lexErr := tokErr.(*tokenizer.Error)
		color.Red("[error] %s line %d", path, lexErr.Line)
		fmt.Fprint(os.Stderr, lexErr.Message)
		os.Exit(1)
	}

	if printTokens {
		highlight.Fprint(os.Stdout, res.Tokens, debug)
	}

	rebuilt := rebuild.Rebuild(res)
	verdict, mismatchLine := rebuild.Compare(data, rebuilt)
	formattedDuration := formatDuration(time.Since(startTime))

	switch verdict {
	case rebuild.Different:
		if mismatchLine > 0 {
			color.Red("mismatch at line %d", mismatchLine)
		} else {
			color.Red("length mismatch")
		}
		color.Red("Bad rebuild of %s", path)
		os.Exit(1)
	case rebuild.MostlyEqual:
		color.Yellow("[~ok] %s in %s", path, formattedDuration)
		os.Exit(1)
	}
	color.Green("[ok] %s in %s", path, formattedDuration)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
