package publisher

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrUserCancelled is returned when the operator declines the
// production upload confirmation. It ends the affected branch without
// being treated as a failure.
var ErrUserCancelled = errors.New("upload cancelled by user")

// MissingArtifactsError reports that the output directory is absent or
// holds no publishable files.
type MissingArtifactsError struct {
	Directory string
	Patterns  []string
	Reason    string
}

func (e *MissingArtifactsError) Error() string {
	return fmt.Sprintf("no package files (%s) in '%s': %s",
		strings.Join(e.Patterns, ", "), e.Directory, e.Reason)
}

// MissingDependencyError reports that the external uploader could not
// be run.
type MissingDependencyError struct {
	Tool   string
	Output CommandOutput
	Err    error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("uploader '%s' is not available: %v", e.Tool, e.Err)
}

// ExternalCommandError reports that an invocation of the external
// uploader could not execute or exited with a non-zero status.
type ExternalCommandError struct {
	Args   []string
	Output CommandOutput
	Err    error
}

func (e *ExternalCommandError) Error() string {
	return fmt.Sprintf("command '%s' failed: %v", strings.Join(e.Args, " "), e.Err)
}

// IsMissingArtifacts returns true when the cause of err is a
// MissingArtifactsError.
func IsMissingArtifacts(err error) bool {
	_, ok := errors.Cause(err).(*MissingArtifactsError)
	return ok
}

// IsMissingDependency returns true when the cause of err is a
// MissingDependencyError.
func IsMissingDependency(err error) bool {
	_, ok := errors.Cause(err).(*MissingDependencyError)
	return ok
}

// IsExternalCommand returns true when the cause of err is an
// ExternalCommandError.
func IsExternalCommand(err error) bool {
	_, ok := errors.Cause(err).(*ExternalCommandError)
	return ok
}

// IsUserCancelled returns true when err is, or wraps,
// ErrUserCancelled.
func IsUserCancelled(err error) bool {
	return errors.Cause(err) == ErrUserCancelled
}
