package fuzztests

import (
	"testing"

	"dialang/internal/diag"
	"dialang/internal/lexer"
	"dialang/internal/source"
	"dialang/internal/testkit"
	"dialang/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerCoverage(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.cls", input))

		bag := diag.NewBag(0)
		toks := lexer.Lex(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenCoverage(toks, file); err != nil {
			t.Fatal(err)
		}

		invalid := 0
		for _, tok := range toks {
			if tok.Kind == token.Invalid {
				invalid++
			}
		}
		if invalid != bag.Len() {
			t.Fatalf("%d invalid tokens but %d diagnostics", invalid, bag.Len())
		}
	})
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
