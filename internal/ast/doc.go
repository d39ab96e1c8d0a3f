// Package ast defines the program tree produced by the parser.
//
// Every node is wrapped in Spanned so consumers can point back at the
// source. Statements and expressions are closed sets implemented by pointer
// types; a failed construct is represented by ErrorPlaceholder.
package ast
