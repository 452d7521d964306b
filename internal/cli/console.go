package cli

import (
	"io"
	"sync"
)

// clearLine erases the current terminal line and returns the cursor to its start.
const clearLine = "\r\033[2K"

// console serializes writes to stderr, which is shared by the logger and the
// progress reporter while a scan is running.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsole(w io.Writer) *console {
	return &console{w: w}
}

// Write writes p under the console lock.
func (c *console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.w.Write(p)
}

// lineWriter returns a writer that clears the current line before each write,
// so that log lines replace a half-drawn spinner frame instead of splicing into it.
func (c *console) lineWriter() io.Writer {
	return clearingWriter{c: c}
}

type clearingWriter struct {
	c *console
}

func (w clearingWriter) Write(p []byte) (int, error) {
	w.c.mu.Lock()
	defer w.c.mu.Unlock()

	if _, err := io.WriteString(w.c.w, clearLine); err != nil {
		return 0, err
	}

	return w.c.w.Write(p)
}
