package runner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"arete/internal/artifact"
)

// Store is the append-only log of raw results for one run. The first
// line is a self-describing header; every following line is one
// RawResult. Appends are serialized by a mutex and written as single
// whole-line writes so concurrent workers cannot interleave a partial
// record, and an interrupted run leaves a readable log behind.
type Store struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	runID string
	seen  map[Coordinate]struct{}
}

// OpenStore opens or creates the result log for a run. When the log
// already exists its records are loaded so the caller can skip satisfied
// coordinates; the header's run id must match.
func OpenStore(path, runID string) (*Store, error) {
	seen := make(map[Coordinate]struct{})
	if _, err := os.Stat(path); err == nil {
		storedRunID, results, err := LoadResultLog(path)
		if err != nil {
			return nil, err
		}
		if storedRunID != runID {
			return nil, fmt.Errorf("result log %s belongs to run %s, not %s", path, storedRunID, runID)
		}
		for _, result := range results {
			seen[result.Coordinate()] = struct{}{}
		}
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open result log: %w", err)
		}
		return &Store{file: file, path: path, runID: runID, seen: seen}, nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create result log: %w", err)
	}
	header, err := json.Marshal(artifact.Header{Artifact: artifact.KindRawResults, RunID: runID})
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("marshal header: %w", err)
	}
	if _, err := file.Write(append(header, '\n')); err != nil {
		file.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &Store{file: file, path: path, runID: runID, seen: seen}, nil
}

// Append persists one result as a single log line and syncs it to disk.
func (s *Store) Append(result RawResult) error {
	if result.RunID != s.runID {
		return fmt.Errorf("result run id %s does not match store run id %s", result.RunID, s.runID)
	}
	line, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coord := result.Coordinate()
	if _, dup := s.seen[coord]; dup {
		return fmt.Errorf("trial %s/%s/%d already recorded", coord.Condition, coord.ProblemID, coord.Trial)
	}
	if _, err := s.file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append result: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("sync result log: %w", err)
	}
	s.seen[coord] = struct{}{}
	return nil
}

// Satisfied returns the coordinates already present in the log.
func (s *Store) Satisfied() map[Coordinate]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Coordinate]struct{}, len(s.seen))
	for coord := range s.seen {
		out[coord] = struct{}{}
	}
	return out
}

// Close releases the underlying file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// LoadResultLog reads a result log back into memory, returning the run
// id from the header and the recorded results in stable sorted order.
func LoadResultLog(path string) (string, []RawResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open result log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", nil, fmt.Errorf("read result log: %w", err)
		}
		return "", nil, fmt.Errorf("result log %s is empty", path)
	}
	var header artifact.Header
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return "", nil, fmt.Errorf("parse result log header: %w", err)
	}
	if err := header.Check(artifact.KindRawResults); err != nil {
		return "", nil, err
	}

	var results []RawResult
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var result RawResult
		if err := json.Unmarshal([]byte(line), &result); err != nil {
			return "", nil, fmt.Errorf("parse result record: %w", err)
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("read result log: %w", err)
	}
	SortResults(results)
	return header.RunID, results, nil
}
