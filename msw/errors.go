package msw

import "errors"

var (
	// ErrEmptyRegistry is returned when add runs before the seed node was
	// published. The first node must be placed via the publication critical
	// section before any concurrent insertions start.
	ErrEmptyRegistry = errors.New("msw: node registry is empty")

	// ErrUninitializedIndex is returned when a query encounters a node whose
	// add index is unassigned or beyond the registry. It indicates a broken
	// insertion publication order.
	ErrUninitializedIndex = errors.New("msw: node with uninitialized add index")

	// ErrUnsupportedOperation is returned for operations the index does not
	// implement, such as range search.
	ErrUnsupportedOperation = errors.New("msw: unsupported operation")

	// ErrBadParameter is returned when a named option has the wrong type or,
	// for NN, a value below 1.
	ErrBadParameter = errors.New("msw: bad parameter")
)
