// Package core wires the envelope codec, object store and access ledger
// into the store/retrieve lifecycle.
//
// A retrieval moves through retrieve, decrypt and verify in that order.
// Each step has its own terminal failure so callers can tell "not found"
// from "could not decrypt" from "decrypted but integrity failed":
// storage.ErrNotFound, crypto.ErrKeyUnwrap / crypto.ErrAuthentication, and
// ErrIntegrity respectively. The download access record is written once
// decryption succeeds, whether or not verification passes.
//
// The Vault holds explicitly constructed Store and Ledger instances; tests
// substitute isolated in-memory implementations per case.
package core
