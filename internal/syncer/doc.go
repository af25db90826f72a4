// Package syncer propagates watched flags and added-at timestamps between a
// local and a remote catalog.
//
// One direction runs per invocation; running the opposite direction afterward
// is how full bidirectional convergence is reached. Every pass is idempotent:
// re-running a direction against already-converged state performs zero
// mutations. Per-item failures are logged and skipped, never fatal. Dry-run
// computes and reports every decision without issuing a single write.
package syncer
