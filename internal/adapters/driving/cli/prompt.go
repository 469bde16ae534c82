package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errNotInteractive is returned when a confirmation is needed but nobody can answer it.
var errNotInteractive = errors.New("confirmation required but stdin is not a terminal; re-run with --force")

// stdinIsTerminal reports whether stdin is attached to a terminal.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if !stdinIsTerminal() {
		return false, errNotInteractive
	}

	cmd.Printf("\n%s [y/N]: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	return isYes(readLine(reader)), nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
