package toolrunner

import (
	"context"
	"fmt"
	"sync"
)

// Response is a canned reply for Fake.
type Response struct {
	Stdout []byte
	Err    error
}

// Fake is a Runner that replies from a table keyed by command line. Unknown
// commands fail as if the binary were missing.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []string
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// On registers a reply for the exact command line.
func (f *Fake) On(commandLine string, resp Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = resp
	return f
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := CommandLine(name, args...)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, line)
	resp, ok := f.responses[line]
	if !ok {
		return nil, fmt.Errorf("start %s: executable file not found in $PATH", name)
	}
	return resp.Stdout, resp.Err
}

// Calls returns the command lines seen so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Called reports whether the command line was run.
func (f *Fake) Called(commandLine string) bool {
	for _, c := range f.Calls() {
		if c == commandLine {
			return true
		}
	}
	return false
}
