package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInvalidPath is returned when the requested path is missing or not a directory.
var ErrInvalidPath = errors.New("invalid path")

// prompt asks for a path on out and reads a single line from in.
func prompt(in *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter a path: ")

	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading path: %w", err)
	}

	path := strings.Trim(strings.TrimSpace(line), `'"`)
	if path == "" {
		return "", fmt.Errorf("%w: no path given", ErrInvalidPath)
	}

	return path, nil
}

// pause waits until a line (or EOF) is read from in.
func pause(in *bufio.Reader, out io.Writer) {
	fmt.Fprint(out, "\nPress Enter to exit...")

	_, _ = in.ReadString('\n')
}

// WindowsToWSL translates a drive-letter path such as C:\Users\me into the
// matching WSL mount path /mnt/c/Users/me. Other paths are returned unchanged.
func WindowsToWSL(path string) string {
	if len(path) < 2 || path[1] != ':' || !isASCIILetter(path[0]) {
		return path
	}

	drive := strings.ToLower(path[:1])
	rest := strings.ReplaceAll(path[2:], `\`, "/")

	if rest != "" && !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}

	return "/mnt/" + drive + rest
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// validate checks that path exists and is a directory.
func validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPath, path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %q is not a directory", ErrInvalidPath, path)
	}

	return nil
}
