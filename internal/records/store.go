package records

import (
	"fmt"
	"io"
	"os"
	"sync"

	pkgerrors "github.com/bhopalpolice/armory-backend/pkg/errors"
)

// Store is the in-memory license table for one session. It is populated
// by load or upload, mutated only through UpdateStatus, and never
// persisted back to durable storage. One lock serializes mutation so the
// store can sit behind a concurrent HTTP handler.
type Store struct {
	mu      sync.RWMutex
	records []Record
	index   map[string][]int

	// strictDuplicates rejects updates touching more than one row per
	// License_No; the default mirrors the original dataset tooling and
	// updates every match.
	strictDuplicates bool
}

func NewStore(strictDuplicates bool) *Store {
	return &Store{
		index:            map[string][]int{},
		strictDuplicates: strictDuplicates,
	}
}

// LoadFile loads the default dataset. A missing file is a NotFound
// condition; callers treat it as non-fatal and keep the store empty.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("dataset %s not found", path))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open dataset")
	}
	defer f.Close()
	return s.LoadReader(f)
}

// LoadReader parses an uploaded tabular source and replaces the table.
// On error the existing table is left untouched.
func (s *Store) LoadReader(r io.Reader) error {
	recs, err := ReadRecords(r)
	if err != nil {
		return err
	}
	s.Replace(recs)
	return nil
}

// Replace swaps the table, preserving the given insertion order.
func (s *Store) Replace(recs []Record) {
	index := make(map[string][]int, len(recs))
	for i, rec := range recs {
		index[rec.LicenseNo] = append(index[rec.LicenseNo], i)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = recs
	s.index = index
}

// All returns the records in load order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// List returns the subsequence matching the filter, in load order.
func (s *Store) List(f Filter) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return applyFilter(s.records, f)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Find looks up a record by license number. A miss is an empty result,
// not an error. With duplicate keys the first loaded row wins.
func (s *Store) Find(licenseNo string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := s.index[licenseNo]
	if len(positions) == 0 {
		return Record{}, false
	}
	return s.records[positions[0]], true
}

// DuplicateKeys returns license numbers appearing on more than one row.
// Duplicates should not exist by invariant but can arrive in malformed
// uploads; the count is surfaced so loads can log it.
func (s *Store) DuplicateKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var dups []string
	seen := map[string]bool{}
	for _, rec := range s.records {
		if len(s.index[rec.LicenseNo]) > 1 && !seen[rec.LicenseNo] {
			seen[rec.LicenseNo] = true
			dups = append(dups, rec.LicenseNo)
		}
	}
	return dups
}

// UpdateStatus applies the action to every row keyed by licenseNo and
// returns the updated record (first row on duplicates). The mutation is
// all-or-nothing: legality is checked on every matching row before any
// row changes. In strict mode a duplicated key is rejected outright.
func (s *Store) UpdateStatus(licenseNo string, action Action) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := s.index[licenseNo]
	if len(positions) == 0 {
		return Record{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("license %s not found", licenseNo))
	}
	if s.strictDuplicates && len(positions) > 1 {
		return Record{}, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("license %s appears on %d rows", licenseNo, len(positions))).
			WithDetails(map[string]any{"license_no": licenseNo, "rows": len(positions)})
	}

	targets := make([]Status, len(positions))
	for i, pos := range positions {
		next, err := nextStatus(s.records[pos].Status, action)
		if err != nil {
			return Record{}, err
		}
		targets[i] = next
	}
	for i, pos := range positions {
		s.records[pos].Status = targets[i]
	}
	return s.records[positions[0]], nil
}
