package source

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/rrajen/sfdx-utility-plugins/internal/deploystatus"
	deverrors "github.com/rrajen/sfdx-utility-plugins/internal/errors"
)

// mockCommandExecutor is a mock implementation of config.CommandExecutor for testing.
type mockCommandExecutor struct {
	mu              sync.Mutex
	lookPathResults map[string]string
	runResults      map[string]string
	runErrors       map[string]error
	calls           []string
}

// LookPath implements config.CommandExecutor.
func (m *mockCommandExecutor) LookPath(file string) (string, error) {
	if path, ok := m.lookPathResults[file]; ok {
		return path, nil
	}
	return "", exec.ErrNotFound
}

// Run implements config.CommandExecutor.
func (m *mockCommandExecutor) Run(_ context.Context, name string, args ...string) (string, error) {
	key := name
	if len(args) > 0 {
		key = name + " " + strings.Join(args, " ")
	}

	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.mu.Unlock()

	out, hasOut := m.runResults[key]
	err, hasErr := m.runErrors[key]
	if !hasOut && !hasErr {
		return "", fmt.Errorf("%w: %s", deverrors.ErrCommandNotConfigured, key)
	}
	return out, err
}

// stubFetcher returns canned results per call and counts calls.
type stubFetcher struct {
	mu      sync.Mutex
	name    string
	results []stubResult
	calls   int
}

type stubResult struct {
	doc *deploystatus.Document
	err error
}

func (s *stubFetcher) Name() string { return s.name }

func (s *stubFetcher) Fetch(_ context.Context, _ string) (*deploystatus.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	return s.results[i].doc, s.results[i].err
}

func (s *stubFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func mustParse(input string) *deploystatus.Document {
	doc, err := deploystatus.Parse([]byte(input))
	if err != nil {
		panic(err)
	}
	return doc
}
