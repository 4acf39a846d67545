package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	flagPassword      = "password"
	flagPasswordStdin = "password-stdin"
)

func addPasswordFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagPassword, "", "Account password (prefer --password-stdin or the prompt)")
	cmd.Flags().Bool(flagPasswordStdin, false, "Read the password from the first line of stdin")
}

// readPassword returns the password from the flags, from stdin, or from a
// terminal prompt, in that order. confirm asks twice on the prompt.
func readPassword(cmd *cobra.Command, confirm bool) (string, error) {
	if cmd.Flags().Changed(flagPassword) {
		return cmd.Flags().GetString(flagPassword)
	}

	if fromStdin, _ := cmd.Flags().GetBool(flagPasswordStdin); fromStdin {
		return readLine(cmd.InOrStdin())
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrPasswordRequired
	}

	password, err := prompt(cmd, fd, "Password: ")
	if err != nil || !confirm {
		return password, err
	}
	repeat, err := prompt(cmd, fd, "Repeat password: ")
	if err != nil {
		return "", err
	}
	if repeat != password {
		return "", ErrPasswordMismatch
	}
	return password, nil
}

func prompt(cmd *cobra.Command, fd int, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", ErrPasswordRequired
	}
	return line, nil
}
