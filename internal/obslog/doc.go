// Package obslog wraps go.uber.org/zap behind the narrow logging surface
// the checker components need, so that none of them import zap
// directly and all of them default to silent operation when no logger
// is supplied.
//
// Frontier tracing is opt-in and leveled rather than unconditionally
// printed.
package obslog
