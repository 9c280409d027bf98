// Package input reads repository paths piped to fwver on stdin.
package input

import (
	"bufio"
	"io"
	"strings"
)

// Read returns one trimmed path per line. Blank lines and lines starting
// with '#' are dropped, so a checked-in list of firmware repos can carry
// comments.
func Read(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}
