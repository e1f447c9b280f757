// Package index builds and serves the reverse index the search engine
// prunes against: a map from (key, value) pairs to the set of
// transaction positions that wrote that exact pair.
//
// The index is built once per check and never mutated afterwards. It
// owns no reference back to the history it was built from; lookups
// are by value.
package index
