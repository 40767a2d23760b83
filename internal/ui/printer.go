package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jonkarrer/brize/internal/domain"
)

// Printer writes operator-facing progress lines.
type Printer struct {
	out io.Writer

	header  *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

// New returns a Printer writing to out. Colour is disabled automatically when
// out is not a terminal (see color.NoColor).
func New(out io.Writer) *Printer {
	return &Printer{
		out:     out,
		header:  color.New(color.BgWhite, color.FgBlack, color.Bold),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
}

// Header prints a section banner followed by a blank line.
func (p *Printer) Header(title string) {
	p.header.Fprint(p.out, "   "+title+"   ")
	fmt.Fprint(p.out, "\n\n")
}

// Success prints a check-marked line.
func (p *Printer) Success(format string, args ...any) {
	p.success.Fprintln(p.out, "✅ "+fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprintln(p.out, "⚠️  "+fmt.Sprintf(format, args...))
}

// Info prints an uncoloured line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, fmt.Sprintf(format, args...))
}

// Failure prints err as one red line, plus its hint when it carries one.
func (p *Printer) Failure(err error) {
	p.fail.Fprintln(p.out, "❌ "+err.Error())
	var se *domain.Error
	if errors.As(err, &se) && se.Hint != "" {
		p.fail.Fprintln(p.out, "   "+se.Hint)
	}
}
