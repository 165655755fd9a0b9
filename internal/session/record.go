package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

// RecordKey is the durable storage key for the session record.
const RecordKey = "quiz_state"

// ErrCorruptRecord marks a persisted record that could not be decoded.
var ErrCorruptRecord = errors.New("corrupt session record")

// Record is the durable form of State. Sets are encoded as sorted slices.
type Record struct {
	Wrongs         []string               `json:"wrongs"`
	AnsweredAll    []int                  `json:"answeredAll"`
	AnsweredWrongs []string               `json:"answeredWrongs"`
	Index          int                    `json:"index"`
	Mode           string                 `json:"mode"`
	Theme          string                 `json:"theme"`
	Analytics      map[string]RecordStats `json:"analytics"`

	// Sets fingerprints the catalog the record was taken against.
	Sets []string `json:"sets,omitempty"`
}

// RecordStats is the durable form of QuestionStats. TimeSpent is in
// milliseconds.
type RecordStats struct {
	Attempts  int   `json:"attempts"`
	TimeSpent int64 `json:"timeSpent"`
	Correct   bool  `json:"correct"`
}

// record converts the state into its durable form.
func (s *State) record(sets []string) *Record {
	rec := &Record{
		Wrongs:         sortedKeys(s.Missed),
		AnsweredAll:    make([]int, 0, len(s.CompletedAll)),
		AnsweredWrongs: sortedKeys(s.CompletedWrong),
		Index:          s.Cursor,
		Mode:           s.Mode.String(),
		Theme:          s.Theme,
		Analytics:      make(map[string]RecordStats, len(s.Analytics)),
		Sets:           append([]string(nil), sets...),
	}
	for i, ok := range s.CompletedAll {
		if ok {
			rec.AnsweredAll = append(rec.AnsweredAll, i)
		}
	}
	sort.Ints(rec.AnsweredAll)
	for id, qs := range s.Analytics {
		rec.Analytics[id] = RecordStats{
			Attempts:  qs.Attempts,
			TimeSpent: qs.TimeSpent.Milliseconds(),
			Correct:   qs.LastCorrect,
		}
	}
	return rec
}

// StateFromRecord rebuilds a State from a durable record. Missing fields
// take their defaults; an unknown mode is an error.
func StateFromRecord(rec *Record) (*State, error) {
	mode, ok := ModeFromString(rec.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrCorruptRecord, rec.Mode)
	}
	if rec.Index < 0 {
		return nil, fmt.Errorf("%w: negative index %d", ErrCorruptRecord, rec.Index)
	}

	s := NewState()
	s.Mode = mode
	s.Cursor = rec.Index
	if rec.Theme != "" {
		s.Theme = rec.Theme
	}
	for _, id := range rec.Wrongs {
		s.Missed[id] = true
	}
	for _, i := range rec.AnsweredAll {
		s.CompletedAll[i] = true
	}
	for _, id := range rec.AnsweredWrongs {
		s.CompletedWrong[id] = true
	}
	for id, rs := range rec.Analytics {
		s.Analytics[id] = &QuestionStats{
			Attempts:    rs.Attempts,
			TimeSpent:   time.Duration(rs.TimeSpent) * time.Millisecond,
			LastCorrect: rs.Correct,
		}
	}
	return s, nil
}

// EncodeRecord serializes a record to JSON.
func EncodeRecord(rec *Record) ([]byte, error) {
	return json.Marshal(rec)
}

// DecodeRecord parses a JSON record. Decoding failures wrap
// ErrCorruptRecord.
func DecodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return &rec, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k, ok := range m {
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
