package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter reads one trimmed line of input per question.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask prints label and returns the next input line with surrounding spaces removed.
func (p *prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}
