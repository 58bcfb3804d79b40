package publisher

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Status line markers.
const (
	markOK   = "[OK]"
	markFail = "[FAIL]"
	markInfo = "[INFO]"
	markWarn = "[WARN]"
)

// Confirmation is the result of asking the operator a yes/no question.
type Confirmation int

const (
	// Declined is any answer other than "yes".
	Declined Confirmation = iota
	// Confirmed is an answer of exactly "yes", ignoring case.
	Confirmed
	// Invalid means no answer could be read, e.g. because input
	// ended. Callers treat it the same as Declined.
	Invalid
)

func (c Confirmation) String() string {
	switch c {
	case Confirmed:
		return "confirmed"
	case Declined:
		return "declined"
	default:
		return "invalid"
	}
}

// Console is the operator-facing terminal: status lines go to the
// writer, and answers are read one line at a time from the reader.
type Console struct {
	out io.Writer
	in  *bufio.Reader
}

// NewConsole constructs a Console.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		out: out,
		in:  bufio.NewReader(in),
	}
}

// Success writes a formatted line marked as a completed step.
func (c *Console) Success(format string, args ...interface{}) { c.status(markOK, format, args...) }

// Failure writes a formatted line marked as a failed step.
func (c *Console) Failure(format string, args ...interface{}) { c.status(markFail, format, args...) }

// Info writes a formatted progress line.
func (c *Console) Info(format string, args ...interface{}) { c.status(markInfo, format, args...) }

// Warning writes a formatted line for problems that do not stop the
// run.
func (c *Console) Warning(format string, args ...interface{}) { c.status(markWarn, format, args...) }

// Println writes an unmarked line.
func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

// Printf writes unmarked formatted text.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) status(mark, format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// Prompt writes the question and returns the next input line without
// its line terminator. A final line without a terminator is returned
// normally; io.EOF is returned only when no input remains.
func (c *Console) Prompt(question string) (string, error) {
	fmt.Fprint(c.out, question)

	line, err := c.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		if err == io.EOF {
			fmt.Fprintln(c.out)
			return "", err
		}
		return "", errors.Wrap(err, "problem reading operator input")
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question. Only an answer of exactly "yes",
// ignoring case, is Confirmed.
func (c *Console) Confirm(question string) Confirmation {
	answer, err := c.Prompt(question)
	if err != nil {
		return Invalid
	}

	if strings.EqualFold(answer, "yes") {
		return Confirmed
	}

	return Declined
}

// WaitForEnter blocks until the operator submits a line. It returns an
// error when input ends first.
func (c *Console) WaitForEnter(message string) error {
	_, err := c.Prompt(message)
	return err
}
