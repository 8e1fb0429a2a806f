package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

// ask prints label and reads one line, unless value is already set.
func ask(label, value string) string {
	if value != "" {
		return value
	}
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// askSecret reads a value without echo when stdin is a terminal.
func askSecret(label, value string) string {
	if value != "" {
		return value
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ask(label, "")
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fatal("Error reading input", err)
	}
	return strings.TrimSpace(string(b))
}

// confirm asks a yes/no question.
func confirm(label string) bool {
	answer := strings.ToLower(ask(label+" [y/N]", ""))
	return answer == "y" || answer == "yes"
}
