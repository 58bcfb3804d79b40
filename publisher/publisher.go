/*
Package publisher implements the release workflow: it finds built
distributions in the output directory, confirms that the external
uploader is available, validates the distributions with it, and then
uploads them to the staging and production indexes as the operator
chooses.

Every call to the uploader goes through a Runner, one process at a
time, and waits for it to exit. Nothing is retried.
*/
package publisher

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// Result is the outcome of one uploader operation.
type Result struct {
	Target    Target
	Success   bool
	Cancelled bool
	Output    CommandOutput
	Err       error
}

// Publisher drives the external uploader for one run.
type Publisher struct {
	conf      *Config
	runner    Runner
	console   *Console
	uploader  *uploader
	runID     string
	artifacts []Artifact
}

// New constructs a Publisher. The configuration must be valid.
func New(conf *Config, runner Runner, console *Console) (*Publisher, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	u, err := newUploader(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Publisher{
		conf:     conf,
		runner:   runner,
		console:  console,
		uploader: u,
		runID:    uuid.New().String(),
	}, nil
}

// Artifacts returns the artifact set found by the last precondition
// check.
func (p *Publisher) Artifacts() []Artifact { return p.artifacts }

// Run performs the precondition, tool and validation checks and then
// hands over to the interactive menu. Any error it returns means the
// run failed before the menu, or operator input ended at the menu.
func (p *Publisher) Run(ctx context.Context) error {
	title := "Package Upload Tool"
	if p.conf.Project != "" {
		title = p.conf.Project + " " + title
	}
	p.console.Println(title)
	p.console.Println(strings.Repeat("=", 50))

	if err := p.Check(ctx); err != nil {
		return err
	}

	return p.Drive(ctx)
}

// Check runs the checks that must pass before any upload: the
// precondition check, the tool-availability check and validation.
func (p *Publisher) Check(ctx context.Context) error {
	if _, err := p.CheckPreconditions(); err != nil {
		return err
	}

	if err := p.CheckTool(ctx); err != nil {
		return err
	}

	if res := p.Validate(ctx); !res.Success {
		p.console.Failure("Package validation failed. Please fix issues before uploading.")
		return errors.Wrap(res.Err, "package validation failed")
	}

	return nil
}

// CheckPreconditions finds the artifact set and reports it. It
// returns a MissingArtifactsError when there is nothing to publish.
func (p *Publisher) CheckPreconditions() ([]Artifact, error) {
	p.console.Info("Checking prerequisites...")

	artifacts, err := FindArtifacts(p.conf.DistDir, p.conf.Patterns)
	if err != nil {
		if IsMissingArtifacts(err) {
			p.console.Failure("%s. Please build the distributions first (e.g. 'python -m build').", err.Error())
		} else {
			p.console.Failure("%s", err.Error())
		}
		return nil, err
	}
	p.artifacts = artifacts

	p.console.Success("Found %d package files:", len(artifacts))
	for _, a := range artifacts {
		p.console.Printf("   - %s\n", a)
	}

	versions := ReleaseVersions(artifacts)
	switch len(versions) {
	case 0:
	case 1:
		p.console.Info("Release version: %s", versions[0])
	default:
		p.console.Warning("Package files span multiple versions: %s", strings.Join(versions, ", "))
	}

	grip.Debug(message.Fields{
		"message":  "found artifacts",
		"run":      p.runID,
		"dir":      p.conf.DistDir,
		"count":    len(artifacts),
		"versions": versions,
	})

	return artifacts, nil
}

// CheckTool confirms that the uploader can be run by asking for its
// version. It returns a MissingDependencyError otherwise.
func (p *Publisher) CheckTool(ctx context.Context) error {
	args := p.uploader.versionArgs()
	tool := strings.Join(p.uploader.command, " ")

	out, err := p.runner.Run(ctx, args)
	if err != nil {
		p.console.Failure("%s is not available. Please install it (e.g. 'pip install twine').", tool)
		p.printOutput(out)
		return &MissingDependencyError{
			Tool:   tool,
			Output: out,
			Err:    err,
		}
	}

	p.console.Success("%s is installed", tool)

	return nil
}

// Validate runs the uploader's check operation over the artifact set.
// Failure is reported in the result rather than as an error.
func (p *Publisher) Validate(ctx context.Context) Result {
	p.console.Println()
	p.console.Info("Validating package...")

	artifacts, err := p.ensureArtifacts()
	if err != nil {
		return Result{Err: err}
	}

	out, err := p.run(ctx, "Validating package", p.uploader.checkArgs(artifactPaths(artifacts)))
	if err != nil {
		p.console.Failure("Package validation failed")
		return Result{Output: out, Err: err}
	}

	p.console.Success("Package validation passed!")

	return Result{Success: true, Output: out}
}

// Upload sends the artifact set to the target index. A production
// upload first asks the operator to type "yes"; any other answer
// cancels it without running the uploader.
func (p *Publisher) Upload(ctx context.Context, t Target) Result {
	if err := t.Validate(); err != nil {
		return Result{Target: t, Err: err}
	}

	artifacts, err := p.ensureArtifacts()
	if err != nil {
		return Result{Target: t, Err: err}
	}

	p.console.Println()
	p.console.Info("Uploading to %s index...", t)

	if t == Production {
		answer := p.console.Confirm("\nAre you sure you want to upload to the production index? (yes/no): ")
		if answer != Confirmed {
			p.console.Failure("Upload cancelled by user")
			grip.Debug(message.Fields{
				"message": "production upload cancelled",
				"run":     p.runID,
				"answer":  answer.String(),
			})
			return Result{Target: t, Cancelled: true, Err: ErrUserCancelled}
		}
	}

	j := NewUploadJob(p.runner, p.runID, t, p.uploader.uploadArgs(t, artifactPaths(artifacts)))
	p.announce("Uploading to "+string(t)+" index", j.Args)
	j.Run(ctx)

	if j.Error() != nil || !j.Status().Completed {
		err := j.CommandError()
		if err == nil {
			err = errors.Errorf("upload job '%s' did not complete", j.ID())
		}
		p.reportFailure(err, j.Output)
		p.console.Failure("Failed to upload to %s index", t)
		return Result{Target: t, Output: j.Output, Err: err}
	}
	p.printStdout(j.Output)

	p.console.Success("Successfully uploaded to %s index!", t)
	if url := p.conf.ProjectURL(t); url != "" {
		p.console.Info("Check your package at: %s", url)
	}
	if t == Production && p.conf.Project != "" {
		p.console.Info("Users can install it with: pip install %s", p.conf.Project)
	}

	return Result{Target: t, Success: true, Output: j.Output}
}

func (p *Publisher) ensureArtifacts() ([]Artifact, error) {
	if len(p.artifacts) > 0 {
		return p.artifacts, nil
	}

	artifacts, err := FindArtifacts(p.conf.DistDir, p.conf.Patterns)
	if err != nil {
		return nil, err
	}
	p.artifacts = artifacts

	return artifacts, nil
}

func (p *Publisher) run(ctx context.Context, description string, args []string) (CommandOutput, error) {
	p.announce(description, args)

	out, err := p.runner.Run(ctx, args)
	if err != nil {
		cerr := &ExternalCommandError{Args: args, Output: out, Err: err}
		p.reportFailure(cerr, out)
		return out, cerr
	}
	p.printStdout(out)

	return out, nil
}

func (p *Publisher) announce(description string, args []string) {
	p.console.Info("%s...", description)
	p.console.Println("Running:", strings.Join(args, " "))
	grip.Debug(message.Fields{
		"message": description,
		"run":     p.runID,
		"args":    args,
	})
}

func (p *Publisher) reportFailure(err error, out CommandOutput) {
	p.console.Failure("Error: %v", err)
	p.printOutput(out)
}

func (p *Publisher) printStdout(out CommandOutput) {
	if out.Stdout != "" {
		p.console.Println(strings.TrimRight(out.Stdout, "\n"))
	}
}

func (p *Publisher) printOutput(out CommandOutput) {
	if out.Stdout != "" {
		p.console.Println("STDOUT:", strings.TrimRight(out.Stdout, "\n"))
	}
	if out.Stderr != "" {
		p.console.Println("STDERR:", strings.TrimRight(out.Stderr, "\n"))
	}
}
