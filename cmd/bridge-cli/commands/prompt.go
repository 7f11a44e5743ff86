package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter asks for one line of input. ok is false once input is exhausted.
type Prompter func(label string) (line string, ok bool)

// stdinPrompter prompts on stderr while stdin is a terminal, and returns nil
// otherwise so piped invocations never block.
func stdinPrompter() Prompter {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	return linePrompter(os.Stdin, os.Stderr)
}

func linePrompter(in io.Reader, out io.Writer) Prompter {
	reader := bufio.NewReader(in)
	return func(label string) (string, bool) {
		_, _ = fmt.Fprintf(out, "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}
