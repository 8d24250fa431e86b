// Package ledger persists run history in SQLite so interrupted channel
// downloads can resume without refetching finished transcripts.
//
// The store keeps one row per run and one row per persisted transcript,
// keyed by channel and video id. It is bookkeeping, not a transcript store:
// transcript text lives only in the flat files the output writer produces.
// Deleting the database merely disables resume for past runs.
package ledger
