package publisher

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleConfirm(t *testing.T) {
	for input, expected := range map[string]Confirmation{
		"yes\n":       Confirmed,
		"YES\n":       Confirmed,
		"yEs\r\n":     Confirmed,
		"yes":         Confirmed,
		"no\n":        Declined,
		"y\n":         Declined,
		"yes \n":      Declined,
		"\n":          Declined,
		"":            Invalid,
		"yes yes\n":   Declined,
		"yesterday\n": Declined,
	} {
		out := &bytes.Buffer{}
		c := NewConsole(strings.NewReader(input), out)

		assert.Equal(t, expected, c.Confirm("continue? "), "%q", input)
		assert.True(t, strings.HasPrefix(out.String(), "continue? "))
	}
}

func TestConsolePromptReadsLines(t *testing.T) {
	c := NewConsole(strings.NewReader("first\r\nsecond\nlast"), &bytes.Buffer{})

	for _, expected := range []string{"first", "second", "last"} {
		line, err := c.Prompt("> ")
		require.NoError(t, err)
		assert.Equal(t, expected, line)
	}

	_, err := c.Prompt("> ")
	assert.Equal(t, io.EOF, err)
	assert.Error(t, c.WaitForEnter("press enter"))
}

func TestConsoleStatusMarkers(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewConsole(strings.NewReader(""), out)

	c.Success("uploaded %d files", 2)
	c.Failure("upload failed")
	c.Info("checking")
	c.Warning("multiple versions")

	assert.Equal(t, strings.Join([]string{
		"[OK] uploaded 2 files",
		"[FAIL] upload failed",
		"[INFO] checking",
		"[WARN] multiple versions",
		"",
	}, "\n"), out.String())
}

func TestConfirmationString(t *testing.T) {
	assert.Equal(t, "confirmed", Confirmed.String())
	assert.Equal(t, "declined", Declined.String())
	assert.Equal(t, "invalid", Invalid.String())
}
