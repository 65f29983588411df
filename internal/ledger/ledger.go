package ledger

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Actions recorded in the access trail.
const (
	ActionUpload   = "upload"
	ActionDownload = "download"
	ActionDelete   = "delete"
	ActionKeygen   = "keygen"
)

const timestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single access record.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds, UTC.
	Actor     string `json:"actor"`
	ObjectID  string `json:"object_id,omitempty"`
	Action    string `json:"action"`
}

// Ledger records who did what to which object, when.
type Ledger interface {
	// Record appends an access record. It never fails: backend errors are
	// reported and counted, not propagated.
	Record(actor, objectID, action string)
	// Dropped returns the number of records lost to backend failures.
	Dropped() uint64
}

// Options configures a FileLedger.
type Options struct {
	Logger *logrus.Logger
}

// FileLedger appends access records to a JSON Lines file.
type FileLedger struct {
	path    string
	mu      sync.Mutex
	log     *logrus.Logger
	dropped atomic.Uint64
}

// NewFileLedger creates a ledger writing to path. The file is created on
// first record.
func NewFileLedger(path string, opts Options) *FileLedger {
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	return &FileLedger{path: path, log: opts.Logger}
}

// Record appends an entry with a generated timestamp. The append is atomic
// per record: the mutex serializes writers and the record is written with a
// single O_APPEND write.
func (l *FileLedger) Record(actor, objectID, action string) {
	entry := Entry{
		Timestamp: time.Now().UTC().Format(timestampFormat),
		Actor:     actor,
		ObjectID:  objectID,
		Action:    action,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		l.drop(err)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// #nosec G306 -- the access trail should be readable by operators.
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.drop(err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		l.drop(err)
	}
}

// Dropped returns the number of records lost to backend failures.
func (l *FileLedger) Dropped() uint64 {
	return l.dropped.Load()
}

// Path returns the trail file path.
func (l *FileLedger) Path() string {
	return l.path
}

// ReadEntries reads all entries from the trail. Returns an empty slice if
// the trail does not exist yet.
func (l *FileLedger) ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseEntries(data)
}

func (l *FileLedger) drop(err error) {
	l.dropped.Add(1)
	l.log.WithError(err).Warn("access record dropped")
}

// ParseEntries parses JSON Lines data into access records.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip partial writes.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// MemoryLedger records entries in memory, for tests and embedding.
type MemoryLedger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{}
}

// Record appends an entry with a generated timestamp.
func (l *MemoryLedger) Record(actor, objectID, action string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Timestamp: time.Now().UTC().Format(timestampFormat),
		Actor:     actor,
		ObjectID:  objectID,
		Action:    action,
	})
}

// Dropped always returns zero; in-memory appends cannot fail.
func (l *MemoryLedger) Dropped() uint64 {
	return 0
}

// Entries returns a copy of all recorded entries.
func (l *MemoryLedger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}
