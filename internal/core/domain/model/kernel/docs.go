// Package kernel contains the shared value objects of the dispatch domain:
// UUID identifiers and geographic points with great-circle distance.
//
// Value objects in this package are immutable and validated on
// construction. The zero value of each type is invalid; use the provided
// constructors and check Validate when reconstructing from persistence.
package kernel
