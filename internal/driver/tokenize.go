package driver

import (
	"fmt"

	"go.uber.org/zap"

	"dialang/internal/diag"
	"dialang/internal/lexer"
	"dialang/internal/source"
	"dialang/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file. Tokens end with EOF.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(opts.MaxDiagnostics)

	var tokens []token.Token
	opts.phase("tokenize", func() string {
		tokens = lexer.Lex(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		return fmt.Sprintf("%d tokens", len(tokens))
	})
	opts.logger().Debug("tokenized",
		zap.String("path", file.Path),
		zap.Int("tokens", len(tokens)),
		zap.Int("diagnostics", bag.Len()),
	)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
