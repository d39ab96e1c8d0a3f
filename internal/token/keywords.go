package token

var keywords = map[string]Kind{
	"fn":    KwFn,
	"if":    KwIf,
	"else":  KwElse,
	"while": KwWhile,
	"for":   KwFor,
	"in":    KwIn,
	"class": KwClass,
	// TODO: drop the struct alias once existing inputs are migrated to class.
	"struct": KwClass,
}

var annotations = map[string]Kind{
	"SequenceEntrypoint": AtSequenceEntrypoint,
}

// LookupKeyword reports whether ident is a keyword. Matching is exact and
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// LookupAnnotation resolves the name following '@' against the closed set of
// annotation tags.
func LookupAnnotation(name string) (Kind, bool) {
	k, ok := annotations[name]
	return k, ok
}
