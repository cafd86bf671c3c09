package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdinIsTerminal reports whether a user can answer prompts.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptUser displays a message and waits for the user to enter 'y' or 'n'.
// Returns true if the user enters 'y' or 'yes' (case-insensitive), false otherwise.
func promptUser(in io.Reader, out io.Writer, message string) (bool, error) {
	fmt.Fprint(out, message)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
