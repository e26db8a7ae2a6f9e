// ABOUTME: Errors returned by the lisp built-ins
// ABOUTME: Type, range, arity and unbound variable conditions

// Package builtins holds native lisp functions written against the rooting
// protocol. Functions that reach a safe point take their heap arguments as
// roots; the rest take plain values.
package builtins

import "errors"

var (
	ErrWrongType     = errors.New("wrong type argument")
	ErrArithRange    = errors.New("arithmetic error")
	ErrVoidVariable  = errors.New("void variable")
	ErrWrongArgCount = errors.New("wrong number of arguments")
)
