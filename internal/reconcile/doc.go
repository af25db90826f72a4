// Package reconcile computes read-only comparison reports between two
// catalogs: titles present in a source library but missing from a target, and
// items carrying combined duplicate media versions.
package reconcile
