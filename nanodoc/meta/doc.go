// Package meta maintains the built-in metadata collections that live next
// to user collections:
//
//	settings      store-wide switches (counting, tick interval)
//	interactions  session and cumulative count of model operations
//	runtime       seconds the current process has been ticking
//
// Nothing here is part of the document contract. Counter and tick failures
// are logged and swallowed so bookkeeping never aborts a model operation.
package meta
