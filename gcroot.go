// ABOUTME: Root package of the lisp heap rooting library
// ABOUTME: Holds version information and the package overview

// Package gcroot is the memory-safety core of an embedded lisp runtime.
//
// The arena package implements the rooting protocol: root sets, stack
// ordered guards, branded owner sessions and rooted views of values. The
// object package encodes values as tagged words, builtins contains the
// native functions that allocate under that protocol, and heapgraph and
// heapdump capture and explain the live heap.
package gcroot

// Version is the semantic version of the library
const Version = "0.1.0-dev"
