package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// readWordList reads one word per line from path, or from stdin when path
// is "-". Blank lines and lines starting with '#' are skipped. Words are
// returned raw; normalization happens in the pipeline.
func readWordList(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open word list: %w", err)
		}
		defer f.Close()
		r = f
	}
	return scanWordList(r)
}

func scanWordList(r io.Reader) ([]string, error) {
	var list []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		list = append(list, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return list, nil
}
