// Package config holds the small set of caller-tunable options the
// checker needs beyond the history itself: the guard namespace, the SI
// abnormal value, and a debug-logging toggle. The core library never
// reads these from a file or the environment; cmd/isocheck loads them
// from YAML and passes the resulting Options in programmatically.
package config
