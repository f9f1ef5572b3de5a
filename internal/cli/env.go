package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// Env holds injectable dependencies for CLI commands. Tests replace the
// streams and the clock; DefaultEnv wires the process ones.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	// HomeDir locates the default config file. Defaults to go-homedir.
	HomeDir func() (string, error)
	// ReadSecret prompts for a value without echoing it.
	ReadSecret func(prompt string) (string, error)
}

// DefaultEnv returns an Env bound to the process streams.
func DefaultEnv() *Env {
	env := &Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Now:    time.Now,
	}
	env.ReadSecret = env.readSecret
	return env
}

// readSecret reads without echo when stdin is a terminal, otherwise it
// reads one line.
func (e *Env) readSecret(prompt string) (string, error) {
	fmt.Fprint(e.Stderr, prompt)

	if f, ok := e.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(e.Stderr)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return e.readLine()
}

func (e *Env) readLine() (string, error) {
	line, err := bufio.NewReader(e.Stdin).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
