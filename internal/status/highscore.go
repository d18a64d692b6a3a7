package status

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/tomz197/spaceshooter/internal/config"
)

// HighScores loads and saves the best score per game mode.
type HighScores interface {
	Load(mode config.Mode) (int, error)
	// Save records score for mode unless a higher one is already stored and
	// returns the stored best.
	Save(mode config.Mode, score int) (int, error)
}

// FileStore keeps high scores in a text file, one integer per line, where
// the line index is the game mode. It is safe for concurrent use.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the high score for mode. A missing file, a missing line or an
// unparsable line all read as 0; only other I/O failures are errors.
func (s *FileStore) Load(mode config.Mode) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return 0, err
	}
	if int(mode) < 0 || int(mode) >= len(lines) {
		return 0, nil
	}
	score, err := strconv.Atoi(strings.TrimSpace(lines[mode]))
	if err != nil {
		return 0, nil
	}
	return score, nil
}

// Save stores score as the high score for mode, keeping the other modes'
// lines. The file is re-read under the lock, so a score saved meanwhile by
// another session is only replaced by a higher one.
func (s *FileStore) Save(mode config.Mode, score int) (int, error) {
	if mode < 0 {
		return 0, fmt.Errorf("save high score: invalid mode %d", int(mode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return 0, err
	}
	for len(lines) <= int(mode) {
		lines = append(lines, "0")
	}
	if existing, err := strconv.Atoi(strings.TrimSpace(lines[mode])); err == nil && existing >= score {
		return existing, nil
	}
	lines[mode] = strconv.Itoa(score)

	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(data), 0o644); err != nil {
		return 0, fmt.Errorf("save high score: %w", err)
	}
	return score, nil
}

func (s *FileStore) readLines() ([]string, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read high scores: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read high scores: %w", err)
	}
	return lines, nil
}
