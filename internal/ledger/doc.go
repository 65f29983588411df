// Package ledger provides the append-only access trail for sealstore.
//
// Every store/retrieve/delete of an object is recorded as one JSON object
// per line (JSON Lines) with a UTC timestamp, the acting identity, the
// object id and the action. Records are never mutated or deleted.
//
// Recording is best-effort by design: a failing audit backend must not
// abort the cryptographic operation it is logging. Failed appends are
// reported through the configured logger and counted; Dropped() exposes
// the count so callers can alert on audit loss.
//
// ReadEntries parses the trail back, skipping malformed lines to tolerate
// partial writes.
package ledger
