package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when input ends before an answer is given.
var ErrNoInput = errors.New("prompt: input closed")

// Asker reads operator answers.
type Asker interface {
	Ask(ctx context.Context, label string) (string, error)
	AskSecret(ctx context.Context, label string) (string, error)
}

// Prompter reads line-oriented answers. Empty answers are asked again.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// readSecret reads a line without echo; nil falls back to a plain read.
	readSecret func() ([]byte, error)
}

// New returns a Prompter over arbitrary streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// NewTerminal returns a Prompter on stdin/stdout that hides secret input when
// stdin is a terminal.
func NewTerminal() *Prompter {
	p := New(os.Stdin, os.Stdout)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		p.readSecret = func() ([]byte, error) {
			return term.ReadPassword(fd)
		}
	}
	return p
}

// Ask prints label and returns the trimmed answer.
func (p *Prompter) Ask(ctx context.Context, label string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if err != nil {
			if errors.Is(err, io.EOF) && answer != "" {
				return answer, nil
			}
			if errors.Is(err, io.EOF) {
				return "", ErrNoInput
			}
			return "", fmt.Errorf("read answer: %w", err)
		}
		if answer != "" {
			return answer, nil
		}
	}
}

// AskSecret is Ask without terminal echo.
func (p *Prompter) AskSecret(ctx context.Context, label string) (string, error) {
	if p.readSecret == nil {
		return p.Ask(ctx, label)
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(p.out, "%s: ", label)
		raw, err := p.readSecret()
		fmt.Fprint(p.out, "\n")
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		if answer := strings.TrimSpace(string(raw)); answer != "" {
			return answer, nil
		}
	}
}
