package typehint

import (
	"github.com/dhamidi/phint/php"
	"github.com/dhamidi/phint/php/parser"
)

// RewriteSource rewrites one file's source text against a project-wide
// index. The index supplies inherited documentation from other files.
func RewriteSource(source []byte, file string, index *php.Index, config Config) (string, []Edit) {
	rw := NewRewriter(NewResolver(index), config)
	return rw.Rewrite(parser.Tokenize(source, file))
}

// RewriteStandalone rewrites a single file using only its own declarations,
// for when no project context is available.
func RewriteStandalone(source []byte, file string, config Config) (string, []Edit) {
	model := php.ParseFile(source, file)
	index := php.NewIndex(model.Classes, model.Functions)
	return RewriteSource(source, file, index, config)
}
