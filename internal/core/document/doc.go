// Package document holds the canonical, schema-less form of a compose document.
//
// This package is part of the Functional Core - all functions are pure with no I/O.
// A document is a tree of three node variants:
//
//   - Scalar: a string, number, boolean or null leaf
//   - Sequence: an ordered list of nodes
//   - Map: an insertion-ordered string-keyed map of nodes
//
// A nil Node means "absent". Paths into the tree are resolved with Path.Resolve,
// which understands the First wildcard segment ("the first value here, whatever
// its key").
//
// # Usage
//
//	doc := document.FromMap(root)
//	count := document.ParsePath("deploy/resources/reservations/devices/:first:/count").Resolve(service)
//	if document.Truthy(count) { ... }
package document
