// Package display renders code batches for a terminal or a pipe.
package display

import (
	"io"
	"os"
	"sync"

	"github.com/jeremyhahn/go-twofa/pkg/otp"
	"golang.org/x/term"
)

// eraseLine returns the cursor to column 0 and clears the line.
const eraseLine = "\r\033[K"

// Printer writes one batch per call. On a terminal each batch redraws the
// current line; otherwise each batch is its own line.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	inline bool
	drawn  bool
}

// New returns a Printer writing to w. inline selects in-place redraws.
func New(w io.Writer, inline bool) *Printer {
	return &Printer{w: w, inline: inline}
}

// NewForFile returns a Printer for f, redrawing in place when f is a terminal.
func NewForFile(f *os.File) *Printer {
	return New(f, term.IsTerminal(int(f.Fd())))
}

// Format renders b as space separated codes followed by the seconds left
// in the current window, e.g. "755224 287082 17s".
func Format(b *otp.Batch) string {
	return b.String()
}

// Print writes b.
func (p *Printer) Print(b *otp.Batch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	line := Format(b)
	if p.inline {
		p.drawn = true
		_, err := io.WriteString(p.w, eraseLine+line)
		return err
	}
	_, err := io.WriteString(p.w, line+"\n")
	return err
}

// Close ends an in-place line so following output starts on a new line.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inline || !p.drawn {
		return nil
	}
	p.drawn = false
	_, err := io.WriteString(p.w, "\n")
	return err
}
