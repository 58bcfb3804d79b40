package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/dependency"
	"github.com/mongodb/amboy/job"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const uploadJobName = "upload-artifacts"

func init() {
	registry.AddJobType(uploadJobName, func() amboy.Job {
		return makeUploadJob()
	})
}

// UploadJob implements the amboy.Job interface and runs a single
// invocation of the external uploader against one index.
type UploadJob struct {
	Target    Target        `bson:"target" json:"target" yaml:"target"`
	Args      []string      `bson:"args" json:"args" yaml:"args"`
	Output    CommandOutput `bson:"output" json:"output" yaml:"output"`
	*job.Base `bson:"metadata" json:"metadata" yaml:"metadata"`

	runner Runner
	err    error
}

func makeUploadJob() *UploadJob {
	j := &UploadJob{
		Base: &job.Base{
			JobType: amboy.JobType{
				Name:    uploadJobName,
				Version: 0,
			},
		},
	}

	j.SetDependency(dependency.NewAlways())

	return j
}

// NewUploadJob constructs an UploadJob. The runID makes the job id
// unique across runs.
func NewUploadJob(runner Runner, runID string, t Target, args []string) *UploadJob {
	j := makeUploadJob()
	j.SetID(fmt.Sprintf("%s.%s.%s", uploadJobName, t, runID))
	j.Target = t
	j.Args = args
	j.runner = runner

	return j
}

// Run invokes the uploader and records the outcome. The job never
// retries.
func (j *UploadJob) Run(ctx context.Context) {
	defer j.MarkComplete()

	if j.runner == nil {
		j.fail(errors.New("upload job has no command runner"))
		return
	}

	if len(j.Args) == 0 {
		j.fail(errors.New("upload job has no command"))
		return
	}

	out, err := j.runner.Run(ctx, j.Args)
	j.Output = out
	if err != nil {
		j.fail(&ExternalCommandError{
			Args:   j.Args,
			Output: out,
			Err:    err,
		})
		return
	}

	grip.Debug(message.Fields{
		"message": "upload complete",
		"job":     j.ID(),
		"target":  j.Target,
		"args":    strings.Join(j.Args, " "),
	})
}

func (j *UploadJob) fail(err error) {
	j.err = err
	j.AddError(err)
}

// CommandError is a typed view of Error: when the job failed because
// the uploader failed, it returns the ExternalCommandError with the
// captured output; otherwise it returns the job's error.
func (j *UploadJob) CommandError() error {
	err := j.Error()
	if err == nil || j.err == nil {
		return err
	}

	return j.err
}
