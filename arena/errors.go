// ABOUTME: Sentinel errors for rooting protocol violations
// ABOUTME: Every violation is raised as a panic wrapping one of these

package arena

import (
	"errors"
	"fmt"
)

var (
	ErrGuardSet           = errors.New("root guard already set")
	ErrGuardUnset         = errors.New("root guard released before it was set")
	ErrGuardRetired       = errors.New("root guard already released")
	ErrGuardOrder         = errors.New("root guards released out of stack order")
	ErrRootNotAddressable = errors.New("root-set entry must point at the rooted storage")
	ErrEmptyRootSet       = errors.New("pop from empty root set")

	ErrNoOwner       = errors.New("borrow without an owner")
	ErrOwnerClosed   = errors.New("borrow through a closed owner")
	ErrBrandMismatch = errors.New("root borrowed through an owner from another session")
	ErrAliasedBorrow = errors.New("two mutable borrows of the same root")

	ErrCollecting  = errors.New("arena is collecting")
	ErrStaleObject = errors.New("object used after the collection that invalidated it")
	ErrDeadObject  = errors.New("object was freed by the collector")
)

// fatal raises a protocol violation. These are bugs in the calling built-in,
// not conditions a caller can handle.
func fatal(err error, format string, args ...any) {
	if format == "" {
		panic(err)
	}
	panic(fmt.Errorf("%w: "+format, append([]any{err}, args...)...))
}
