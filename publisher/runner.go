package publisher

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/jasper"
	"github.com/pkg/errors"
)

// CommandOutput holds the text an external command wrote.
type CommandOutput struct {
	Stdout string `bson:"stdout" json:"stdout" yaml:"stdout"`
	Stderr string `bson:"stderr" json:"stderr" yaml:"stderr"`
}

// Runner executes one external command to completion. A non-nil error
// means the command could not be started or exited with a non-zero
// status; the captured output is returned in both cases.
type Runner interface {
	Run(ctx context.Context, args []string) (CommandOutput, error)
}

// NewRunner returns a Runner that starts local processes through
// jasper.
func NewRunner() Runner { return &jasperRunner{} }

type jasperRunner struct{}

func (r *jasperRunner) Run(ctx context.Context, args []string) (CommandOutput, error) {
	if len(args) == 0 {
		return CommandOutput{}, errors.New("cannot run an empty command")
	}

	stdout := &closingBuffer{}
	stderr := &closingBuffer{}

	start := time.Now()
	err := jasper.NewCommand().
		Add(args).
		SetOutputWriter(stdout).
		SetErrorWriter(stderr).
		Run(ctx)

	grip.Debug(message.Fields{
		"message":  "external command finished",
		"args":     strings.Join(args, " "),
		"success":  err == nil,
		"duration": time.Since(start).String(),
	})

	return CommandOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, errors.Wrapf(err, "running '%s'", strings.Join(args, " "))
}

// closingBuffer satisfies the io.WriteCloser that jasper expects for
// output redirection.
type closingBuffer struct {
	bytes.Buffer
}

func (b *closingBuffer) Close() error { return nil }
