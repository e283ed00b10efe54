package cli

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kbukum/audioscribe/errors"
	"github.com/kbukum/audioscribe/i18n"
)

// Menu lists files and reads one numeric choice.
type Menu struct {
	in      *bufio.Reader
	printer *i18n.Printer
}

// NewMenu reads answers from in and prints through printer.
func NewMenu(in io.Reader, printer *i18n.Printer) *Menu {
	return &Menu{in: bufio.NewReader(in), printer: printer}
}

type answer struct {
	line string
	err  error
}

// Choose prints files with 1-based numbers and asks for one. ok is false
// when the user enters 0, input ends or ctx is canceled while waiting.
// Non-numeric and out-of-range answers are printed and returned as
// INVALID_INPUT.
func (m *Menu) Choose(ctx context.Context, files []AudioFile) (file AudioFile, ok bool, err error) {
	m.printer.Println(i18n.MsgAvailableFiles)
	for i, f := range files {
		m.printer.Println(i18n.MsgFileEntry, i+1, f.Name, humanize.Bytes(uint64(f.Size)))
	}
	m.printer.Println("")
	m.printer.Print(i18n.MsgPrompt)

	// The read cannot be interrupted; on cancellation it is abandoned.
	read := make(chan answer, 1)
	go func() {
		line, err := m.in.ReadString('\n')
		read <- answer{line: line, err: err}
	}()

	var got answer
	select {
	case got = <-read:
	case <-ctx.Done():
		m.printer.Println("")
		m.printer.Println(i18n.MsgTerminated)
		return AudioFile{}, false, nil
	}

	text := strings.TrimSpace(got.line)
	if got.err != nil && text == "" {
		if got.err != io.EOF {
			return AudioFile{}, false, errors.IOError("read", "stdin", got.err)
		}
		m.printer.Println("")
		m.printer.Println(i18n.MsgTerminated)
		return AudioFile{}, false, nil
	}

	choice, convErr := strconv.Atoi(text)
	if convErr != nil {
		m.printer.Println(i18n.MsgNotANumber)
		return AudioFile{}, false, errors.InvalidInput("choice", "not a number")
	}
	if choice == 0 {
		m.printer.Println(i18n.MsgTerminated)
		return AudioFile{}, false, nil
	}
	if choice < 1 || choice > len(files) {
		m.printer.Println(i18n.MsgInvalidNumber)
		return AudioFile{}, false, errors.InvalidInput("choice", "out of range")
	}
	return files[choice-1], true, nil
}
