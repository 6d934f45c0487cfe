package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const clearSequence = "\033[H\033[2J"

// MaxLineLength is the longest input line accepted, in bytes.
const MaxLineLength = 1 << 20

// Terminal reads lines from an input stream and writes to an output stream.
type Terminal struct {
	reader  *bufio.Reader
	out     io.Writer
	isTTY   bool
	maxLine int
}

// NewTerminal wraps in and out. Screen clearing is enabled only when out is
// an interactive terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{
		reader:  bufio.NewReader(in),
		out:     out,
		isTTY:   isTTY,
		maxLine: MaxLineLength,
	}
}

// Out returns the output stream.
func (t *Terminal) Out() io.Writer {
	return t.out
}

// ReadLine blocks for the next line. It returns io.EOF once input is
// exhausted. A line longer than the limit is consumed and reported as a
// parse error so reading can continue with the next line.
func (t *Terminal) ReadLine() (string, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := t.reader.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > t.maxLine {
				tooLong, line = true, nil
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 && !tooLong {
				return "", io.EOF
			}
			break
		}
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		break
	}

	if tooLong {
		return "", errLineTooLong
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

// Prompt writes question without a newline and reads the answer.
func (t *Terminal) Prompt(question string) (string, error) {
	if _, err := io.WriteString(t.out, question); err != nil {
		return "", err
	}
	return t.ReadLine()
}

// Println writes a line of output.
func (t *Terminal) Println(a ...any) {
	fmt.Fprintln(t.out, a...)
}

// Clear wipes the screen.
func (t *Terminal) Clear() {
	if t.isTTY {
		io.WriteString(t.out, clearSequence)
	}
}
