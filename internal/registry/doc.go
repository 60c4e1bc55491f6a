// Package registry discovers implementations of a capability contract by
// convention. It walks a search root for source units, translates each file
// path into a dotted module identifier, loads the unit once, keeps the
// declared types that satisfy the contract and indexes them by key. Lookups
// by key, by latest key or at random trigger a discovery pass when the index
// cannot answer on its own.
//
// A Registry is not safe for concurrent use.
package registry
