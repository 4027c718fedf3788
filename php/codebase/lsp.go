package codebase

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dhamidi/phint/php/typehint"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "phint"

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	config   typehint.Config
	version  string
}

func NewLSPServer(version string, config typehint.Config) *LSPServer {
	ls := &LSPServer{
		version: version,
		config:  config,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.codebase.ScanAll()

	// Pick up files created or edited outside the editor.
	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishHints(ctx, params.TextDocument.URI, path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publishHints(ctx, params.TextDocument.URI, path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.codebase.ScanFile(path)
	}
	ls.publishHints(ctx, params.TextDocument.URI, path)
	return nil
}

// publishHints reports every declaration the rewriter could strengthen as
// an informational diagnostic, one per injectable hint.
func (ls *LSPServer) publishHints(ctx *glsp.Context, uri protocol.DocumentUri, path string) {
	_, edits, ok := ls.codebase.Rewrite(path, ls.config)
	if !ok {
		return
	}

	severity := protocol.DiagnosticSeverityInformation
	source := lsName

	diagnostics := make([]protocol.Diagnostic, 0, len(edits))
	for _, edit := range edits {
		pos := protocol.Position{
			Line:      protocol.UInteger(edit.Pos.Line - 1),
			Character: protocol.UInteger(edit.Pos.Column - 1),
		}
		message := "documented type can be declared: " + strings.TrimSpace(edit.Text)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Source:   &source,
			Message:  message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
