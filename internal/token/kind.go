package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is a single source character that matched no lexical rule.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is a plain or backtick-quoted identifier.
	Ident

	KwFn    // fn
	KwIf    // if
	KwElse  // else
	KwWhile // while
	KwFor   // for
	KwIn    // in
	KwClass // class, struct

	Assign // =

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Dot       // .
	Colon     // :
	Hash      // #
	Semicolon // ; (never lexed)

	// AtSequenceEntrypoint is the @SequenceEntrypoint annotation tag.
	AtSequenceEntrypoint
)

var kindNames = [...]string{
	Invalid:              "Invalid",
	EOF:                  "EOF",
	Ident:                "Ident",
	KwFn:                 "KwFn",
	KwIf:                 "KwIf",
	KwElse:               "KwElse",
	KwWhile:              "KwWhile",
	KwFor:                "KwFor",
	KwIn:                 "KwIn",
	KwClass:              "KwClass",
	Assign:               "Assign",
	LParen:               "LParen",
	RParen:               "RParen",
	LBrace:               "LBrace",
	RBrace:               "RBrace",
	Comma:                "Comma",
	Dot:                  "Dot",
	Colon:                "Colon",
	Hash:                 "Hash",
	Semicolon:            "Semicolon",
	AtSequenceEntrypoint: "AtSequenceEntrypoint",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

var spellings = map[Kind]string{
	KwFn:                 "fn",
	KwIf:                 "if",
	KwElse:               "else",
	KwWhile:              "while",
	KwFor:                "for",
	KwIn:                 "in",
	KwClass:              "class",
	Assign:               "=",
	LParen:               "(",
	RParen:               ")",
	LBrace:               "{",
	RBrace:               "}",
	Comma:                ",",
	Dot:                  ".",
	Colon:                ":",
	Hash:                 "#",
	Semicolon:            ";",
	AtSequenceEntrypoint: "@SequenceEntrypoint",
}

// Spelling returns the canonical source text of fixed-text kinds, or "".
func (k Kind) Spelling() string {
	return spellings[k]
}

// LookupSpelling maps canonical source text back to its kind. It is used by
// configuration that names tokens the way they are written ("class", ";").
func LookupSpelling(s string) (Kind, bool) {
	if s == "struct" {
		return KwClass, true
	}
	for k, sp := range spellings {
		if sp == s {
			return k, true
		}
	}
	return Invalid, false
}

// IsKeyword reports whether k is a language keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwFn && k <= KwClass
}

// IsSeparator reports whether k is one of the single-character separators.
func (k Kind) IsSeparator() bool {
	return k >= LParen && k <= Semicolon
}

// IsAnnotation reports whether k is an annotation tag.
func (k Kind) IsAnnotation() bool {
	return k == AtSequenceEntrypoint
}
