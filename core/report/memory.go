package report

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps run summaries in memory for testing or lightweight usage.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]*Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]*Record{}}
}

// Add inserts the record, replacing any earlier summary of the same run
// and model.
func (s *MemoryStore) Add(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[r.Model] == nil {
		s.data[r.Model] = map[string]*Record{}
	}
	rec := r
	s.data[r.Model][r.RunID] = &rec
	return nil
}

// Query returns records started at or after since, oldest first. An empty
// model matches every model and a zero since matches every record.
func (s *MemoryStore) Query(model string, since time.Time) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res []Record
	for m, runs := range s.data {
		if model != "" && m != model {
			continue
		}
		for _, r := range runs {
			if !since.IsZero() && r.Started.Before(since) {
				continue
			}
			res = append(res, *r)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Started.Equal(res[j].Started) {
			return res[i].Started.Before(res[j].Started)
		}
		return res[i].Model < res[j].Model
	})
	return res, nil
}
