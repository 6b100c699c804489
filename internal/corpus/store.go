package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wordwhiz/vocabot/internal/quiz"
)

// wordRecord is the on-disk shape of one corpus entry.
type wordRecord struct {
	Word        string `json:"word"`
	Description string `json:"description"`
}

// addPayload is the JSON accepted by AddWord, as typed into the management
// command.
type addPayload struct {
	Group       string `json:"group"`
	Word        string `json:"word"`
	Description string `json:"description"`
}

// Store is a JSON-file word corpus keyed by group name. All access goes
// through the mutex; writes rewrite the whole file.
type Store struct {
	mu     sync.Mutex
	path   string
	logger zerolog.Logger
}

// NewStore creates a store backed by the given file. A missing file behaves
// as an empty corpus until the first write.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "corpus_store").Logger(),
	}
}

func (s *Store) load() (map[string][]wordRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string][]wordRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	words := map[string][]wordRecord{}
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("decode corpus file: %w", err)
	}
	return words, nil
}

func (s *Store) save(words map[string][]wordRecord) error {
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("encode corpus: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write corpus file: %w", err)
	}
	return nil
}

// Candidates returns the entries of the named group. Group matching is
// normalization-insensitive; an empty group name selects the whole corpus.
func (s *Store) Candidates(ctx context.Context, group string) ([]quiz.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.load()
	if err != nil {
		return nil, err
	}

	var records []wordRecord
	if group == "" {
		for _, rs := range words {
			records = append(records, rs...)
		}
	} else {
		want := quiz.Normalize(group)
		for name, rs := range words {
			if quiz.Normalize(name) == want {
				records = rs
				break
			}
		}
	}

	entries := make([]quiz.Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, quiz.Entry{Word: r.Word, Description: r.Description})
	}
	return entries, nil
}

// Groups lists the corpus group names, sorted.
func (s *Store) Groups(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.load()
	if err != nil {
		return nil, err
	}

	groups := make([]string, 0, len(words))
	for name := range words {
		groups = append(groups, name)
	}
	sort.Strings(groups)
	return groups, nil
}

// AddWord parses a JSON payload ({"group","word","description"}) and appends
// the entry to its group, creating the group if needed.
func (s *Store) AddWord(ctx context.Context, payload string) error {
	var p addPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return fmt.Errorf("decode word payload: %w", err)
	}
	if p.Group == "" || p.Word == "" || p.Description == "" {
		return fmt.Errorf("word payload requires group, word and description")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.load()
	if err != nil {
		return err
	}

	group := strings.ToLower(strings.TrimSpace(p.Group))
	words[group] = append(words[group], wordRecord{Word: p.Word, Description: p.Description})

	if err := s.save(words); err != nil {
		return err
	}
	s.logger.Info().Str("group", group).Str("word", p.Word).Msg("word added")
	return nil
}

// RemoveWord deletes the word from every group it appears in,
// case-insensitively, reporting whether anything was removed.
func (s *Store) RemoveWord(ctx context.Context, word string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words, err := s.load()
	if err != nil {
		return false, err
	}

	removed := false
	for group, records := range words {
		kept := records[:0]
		for _, r := range records {
			if strings.EqualFold(r.Word, word) {
				removed = true
				continue
			}
			kept = append(kept, r)
		}
		words[group] = kept
	}

	if !removed {
		return false, nil
	}
	if err := s.save(words); err != nil {
		return false, err
	}
	s.logger.Info().Str("word", word).Msg("word removed")
	return true, nil
}
