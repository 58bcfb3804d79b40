package publisher

import (
	"github.com/pkg/errors"
)

// Target selects the package index an upload goes to.
type Target string

const (
	// Staging is the index used to try a release before it is public.
	Staging Target = "staging"

	// Production is the public index that users install from.
	Production Target = "production"
)

// Validate returns an error for unknown targets.
func (t Target) Validate() error {
	switch t {
	case Staging, Production:
		return nil
	default:
		return errors.Errorf("'%s' is not a valid upload target", t)
	}
}

// uploader builds argument vectors for the external upload tool.
type uploader struct {
	command []string
	staging string
}

func newUploader(conf *Config) (*uploader, error) {
	cmd, err := conf.UploaderCommand()
	if err != nil {
		return nil, err
	}

	return &uploader{
		command: cmd,
		staging: conf.Staging.Repository,
	}, nil
}

func (u *uploader) args(extra ...string) []string {
	out := make([]string, 0, len(u.command)+len(extra))
	out = append(out, u.command...)

	return append(out, extra...)
}

func (u *uploader) versionArgs() []string {
	return u.args("--version")
}

func (u *uploader) checkArgs(files []string) []string {
	return u.args(append([]string{"check"}, files...)...)
}

// uploadArgs only names a repository for staging; the uploader's
// default repository is the production index.
func (u *uploader) uploadArgs(t Target, files []string) []string {
	extra := []string{"upload"}
	if t == Staging {
		extra = append(extra, "--repository", u.staging)
	}
	extra = append(extra, "--verbose")

	return u.args(append(extra, files...)...)
}
