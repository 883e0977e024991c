// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"cppnom/internal/lsp"
)

const lsName = "cppnom"

var handler protocol.Handler

func main() {
	// 1 = debug level, nil = default backend
	commonlog.Configure(1, nil)

	cppnomHandler := lsp.NewCppnomHandler()

	handler = protocol.Handler{
		Initialize:                     cppnomHandler.Initialize,
		Initialized:                    cppnomHandler.Initialized,
		Shutdown:                       cppnomHandler.Shutdown,
		SetTrace:                       cppnomHandler.SetTrace,
		TextDocumentDidOpen:            cppnomHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           cppnomHandler.TextDocumentDidClose,
		TextDocumentDidChange:          cppnomHandler.TextDocumentDidChange,
		TextDocumentCompletion:         cppnomHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: cppnomHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting cppnom LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting cppnom LSP server:", err)
		os.Exit(1)
	}
}
