// Package prompt asks the terminal user for confirmations and credentials.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotInteractive is returned when a question needs a terminal and stdin
// is not one.
var ErrNotInteractive = errors.New("stdin is not a terminal")

type Confirmer struct {
	In            io.Reader
	Out           io.Writer
	IsInteractive func() bool
	// ReadPassword reads a line without echo. Nil falls back to a plain
	// line read, which tests rely on.
	ReadPassword func() ([]byte, error)

	reader *bufio.Reader
}

func DefaultConfirmer() *Confirmer {
	fd := int(os.Stdin.Fd())
	return &Confirmer{
		In:  os.Stdin,
		Out: os.Stderr,
		IsInteractive: func() bool {
			return term.IsTerminal(fd)
		},
		ReadPassword: func() ([]byte, error) {
			return term.ReadPassword(fd)
		},
	}
}

func (c *Confirmer) interactive() bool {
	return c.IsInteractive != nil && c.IsInteractive()
}

func (c *Confirmer) printf(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}

func (c *Confirmer) line() (string, error) {
	if c.reader == nil {
		c.reader = bufio.NewReader(c.In)
	}
	s, err := c.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && s == "" {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Confirm asks a yes/no question. assumeYes skips the question; without a
// terminal the answer is an error telling the user which flag to pass.
func (c *Confirmer) Confirm(question, flag string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !c.interactive() {
		return false, fmt.Errorf("%w: pass %s to confirm", ErrNotInteractive, flag)
	}
	c.printf("%s (y/n): ", question)
	answer, err := c.line()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// ConfirmOverwrite asks before replacing an existing file.
func (c *Confirmer) ConfirmOverwrite(path string, force bool) (bool, error) {
	return c.Confirm(fmt.Sprintf("Warning: %s already exists. Overwrite?", path), "--force", force)
}

// Ask reads one visible line, such as an email address.
func (c *Confirmer) Ask(label string) (string, error) {
	if !c.interactive() {
		return "", ErrNotInteractive
	}
	c.printf("%s", label)
	s, err := c.line()
	return strings.TrimSpace(s), err
}

// Secret reads a password or key without echo.
func (c *Confirmer) Secret(label string) (string, error) {
	if !c.interactive() {
		return "", ErrNotInteractive
	}
	c.printf("%s", label)
	if c.ReadPassword == nil {
		s, err := c.line()
		return strings.TrimSpace(s), err
	}
	b, err := c.ReadPassword()
	c.printf("\n")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
