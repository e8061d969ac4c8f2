// internal/pipeline/doc.go

// Package pipeline fans per-query nearest-neighbour searches out over a
// worker pool and collects the results in query order.
//
// The pool is an explicit handle scoped to one run; there is no process-wide
// worker configuration. Workers share the database view read-only and each
// writes only its own result slots, so no locking is needed.
package pipeline
