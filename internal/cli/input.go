// Package cli provides interactive input helpers.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptLine prints a prompt to w and reads a single trimmed line.
func promptLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptRequired re-prompts until a non-empty value is entered.
func promptRequired(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	for {
		value, err := promptLine(reader, w, prompt)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintln(w, "A value is required.")
	}
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s: ", prompt); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// promptChoice shows a numbered menu and returns the chosen index.
func promptChoice(reader *bufio.Reader, w io.Writer, prompt string, options []string) (int, error) {
	fmt.Fprintln(w, prompt)
	for i, opt := range options {
		fmt.Fprintf(w, "  %d. %s\n", i+1, opt)
	}
	for {
		input, err := promptLine(reader, w, fmt.Sprintf("Choose [1-%d]", len(options)))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintln(w, "Invalid choice, please try again.")
	}
}

// promptFloat reads a float, falling back to def when the input is empty.
func promptFloat(reader *bufio.Reader, w io.Writer, prompt string, def float64) (float64, error) {
	for {
		input, err := promptLine(reader, w, fmt.Sprintf("%s [%g]", prompt, def))
		if err != nil {
			return 0, err
		}
		if input == "" {
			return def, nil
		}
		value, err := strconv.ParseFloat(input, 64)
		if err == nil {
			return value, nil
		}
		fmt.Fprintln(w, "Please enter a number.")
	}
}

// promptBool reads a yes/no answer, falling back to def when empty.
func promptBool(reader *bufio.Reader, w io.Writer, prompt string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		input, err := promptLine(reader, w, fmt.Sprintf("%s [%s]", prompt, hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(w, "Please answer y or n.")
	}
}
