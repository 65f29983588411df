// Package storage provides keyed storage of envelopes for sealstore.
//
// The Store interface abstracts the backing; two implementations exist:
//
//   - BoltStore persists objects in a single BBolt database file using two
//     buckets: config (version, vault id, timestamps) and objects
//     (serialized envelope records). BBolt transactions give the required
//     linearizability per object id, and values are copied out of
//     transactions before use.
//   - MemoryStore keeps objects in a mutex-guarded map and deep-copies
//     envelopes on both Put and Get. Intended for tests and embedding.
//
// Records serialize all five envelope fields plus the creation timestamp as
// JSON; []byte fields are base64-encoded by encoding/json, which is
// byte-exact and lossless. Put is last-write-wins per id.
package storage
