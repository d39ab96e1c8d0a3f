package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001

	// syntax
	SynInfo            Code = 2000
	SynExpected        Code = 2001
	SynUnexpectedToken Code = 2002

	// host I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	LexInfo:            "Lexical information",
	LexUnknownChar:     "Unknown character",
	SynInfo:            "Syntax information",
	SynExpected:        "Expected construct missing",
	SynUnexpectedToken: "Unexpected token",
	IOLoadFileError:    "Failed to load file",
}

// ID returns the stable short identifier, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
