package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cppnom/internal/tokenizer"
)

// SemanticTokenTypes is the legend advertised to the client. Every physical
// token type the tokenizer emits maps onto one of these, except spaces and
// empty lines, which are not sent.
var SemanticTokenTypes = []string{
	"comment",
	"string",
	"number",
	"keyword",
	"operator",
	"macro",
	"variable",
}

// SemanticTokenModifiers is empty: the tokenizer works without symbol
// information, so there is nothing to modify tokens with.
var SemanticTokenModifiers = []string{}

// CppnomHandler implements the LSP handlers for C and C++ documents backed
// by the lossless tokenizer.
type CppnomHandler struct {
	mu      sync.RWMutex
	content map[string]string            // document text, BOM stripped
	results map[string]*tokenizer.Result // last tokenization per document
	log     commonlog.Logger
}

// NewCppnomHandler creates and returns a new CppnomHandler instance.
func NewCppnomHandler() *CppnomHandler {
	return &CppnomHandler{
		content: make(map[string]string),
		results: make(map[string]*tokenizer.Result),
		log:     commonlog.GetLogger("cppnom.lsp"),
	}
}

// Initialize responds to the client's initialize request and advertises the
// server's capabilities.
func (h *CppnomHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *CppnomHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.log.Info("initialized")
	return nil
}

func (h *CppnomHandler) Shutdown(ctx *glsp.Context) error {
	h.log.Info("shutdown")
	return nil
}

func (h *CppnomHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen tokenizes a freshly opened document.
func (h *CppnomHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.log.Infof("opened %s", params.TextDocument.URI)

	diagnostics, err := h.updateTokens(params.TextDocument.URI)
	if err != nil {
		return err
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentDidClose evicts a closed document from the cache.
func (h *CppnomHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.log.Infof("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.results, path)
	return nil
}

// TextDocumentDidChange re-tokenizes a changed document.
func (h *CppnomHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	h.log.Infof("changed %s", params.TextDocument.URI)

	diagnostics, err := h.updateTokens(params.TextDocument.URI)
	if err != nil {
		return err
	}
	sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	return nil
}

// TextDocumentCompletion serves the C++ reserved words as completion items.
func (h *CppnomHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	kind := protocol.CompletionItemKindKeyword
	var items []protocol.CompletionItem
	for _, kw := range tokenizer.Keywords() {
		items = append(items, protocol.CompletionItem{
			Label: kw,
			Kind:  &kind,
		})
	}
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull serves semantic tokens for the whole
// document, delta-encoded per the LSP wire format.
func (h *CppnomHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	h.log.Infof("semantic tokens for %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	content, res, err := h.getOrUpdate(ctx, path, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(content, res.Tokens)

	var data []uint32
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), 0)

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

func (h *CppnomHandler) getOrUpdate(ctx *glsp.Context, path string, rawURI protocol.DocumentUri) (string, *tokenizer.Result, error) {
	h.mu.RLock()
	content, okContent := h.content[path]
	res, okResult := h.results[path]
	h.mu.RUnlock()

	if !okContent || !okResult {
		diagnostics, err := h.updateTokens(rawURI)
		if err != nil {
			return "", nil, err
		}
		sendDiagnosticNotification(ctx, rawURI, diagnostics)

		h.mu.RLock()
		content = h.content[path]
		res = h.results[path]
		h.mu.RUnlock()
		if res == nil {
			return "", nil, fmt.Errorf("no tokens for %s", path)
		}
	}

	return content, res, nil
}

// updateTokens re-reads and re-tokenizes a document, caching the text and
// the token stream. A tokenize error becomes the document's diagnostics;
// the tokens emitted before the error stay cached so highlighting keeps
// working for the healthy part of the file.
func (h *CppnomHandler) updateTokens(rawURI protocol.DocumentUri) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	res, tokErr := tokenizer.Tokenize(data, 0)

	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	h.mu.Lock()
	h.content[path] = content
	h.results[path] = res
	h.mu.Unlock()

	return ConvertTokenizeError(tokErr), nil
}

// uriToPath converts a document URI to a platform-local file path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove the leading slash of /C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
