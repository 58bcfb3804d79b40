package operations

import (
	"context"
	"os"

	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/mongodb/pyrelease/publisher"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const (
	configFlagName            = "config"
	distFlagName              = "dist"
	uploaderFlagName          = "uploader"
	projectFlagName           = "project"
	stagingRepositoryFlagName = "staging-repository"
	targetFlagName            = "target"
)

// Publish returns a cli.Command for the interactive release workflow:
// check the artifacts, validate them, and upload them to the indexes
// the operator picks from a menu.
func Publish() cli.Command {
	return cli.Command{
		Name:    "publish",
		Aliases: []string{"release"},
		Usage:   "validate artifacts and interactively upload them to the staging and production indexes",
		Flags:   publisherFlags(),
		Before:  requireFileExists(configFlagName, true),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			p, err := newPublisher(c)
			if err != nil {
				return errors.WithStack(err)
			}

			return errors.Wrap(p.Run(ctx), "release failed")
		},
	}
}

// Check returns a cli.Command that runs the checks that precede an
// upload without uploading anything.
func Check() cli.Command {
	return cli.Command{
		Name:    "check",
		Aliases: []string{"validate"},
		Usage:   "check that artifacts exist, the uploader is installed, and the artifacts validate",
		Flags:   publisherFlags(),
		Before:  requireFileExists(configFlagName, true),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			p, err := newPublisher(c)
			if err != nil {
				return errors.WithStack(err)
			}

			return errors.Wrap(p.Check(ctx), "checks failed")
		},
	}
}

// Upload returns a cli.Command that uploads to a single index without
// the menu. Production uploads still ask for confirmation.
func Upload() cli.Command {
	return cli.Command{
		Name:  "upload",
		Usage: "validate artifacts and upload them to one index",
		Flags: publisherFlags(
			cli.StringFlag{
				Name:  targetFlagName,
				Usage: "index to upload to: 'staging' or 'production'",
			}),
		Before: mergeBeforeFuncs(
			requireFileExists(configFlagName, true),
			requireStringFlag(targetFlagName),
			requireTarget(targetFlagName),
		),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			p, err := newPublisher(c)
			if err != nil {
				return errors.WithStack(err)
			}

			return uploadOnce(ctx, p, publisher.Target(c.String(targetFlagName)))
		},
	}
}

func uploadOnce(ctx context.Context, p *publisher.Publisher, target publisher.Target) error {
	if err := p.Check(ctx); err != nil {
		return errors.Wrap(err, "checks failed")
	}

	res := p.Upload(ctx, target)
	if res.Cancelled {
		return nil
	}

	if !res.Success {
		return errors.Wrapf(res.Err, "upload to %s failed", target)
	}

	return nil
}

func publisherFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		cli.StringFlag{
			Name:  configFlagName,
			Usage: "path to a YAML configuration file (default: " + publisher.DefaultConfigFile + " when present)",
		},
		cli.StringFlag{
			Name:  distFlagName,
			Usage: "directory holding the built distributions (default: dist)",
		},
		cli.StringFlag{
			Name:   uploaderFlagName,
			Usage:  "command used to run the uploader (default: 'python -m twine')",
			EnvVar: "PYRELEASE_UPLOADER",
		},
		cli.StringFlag{
			Name:  projectFlagName,
			Usage: "project name on the package index, used for links and install hints",
		},
		cli.StringFlag{
			Name:  stagingRepositoryFlagName,
			Usage: "name of the staging repository known to the uploader (default: testpypi)",
		},
	}, flags...)
}

// loadConfig reads the configuration file, if any, and applies flag
// overrides on top of it.
func loadConfig(c *cli.Context) (*publisher.Config, error) {
	path := c.String(configFlagName)
	if path == "" && utility.FileExists(publisher.DefaultConfigFile) {
		path = publisher.DefaultConfigFile
	}

	conf := publisher.NewConfig()
	if path != "" {
		var err error
		conf, err = publisher.GetConfig(path)
		if err != nil {
			return nil, errors.Wrap(err, "problem getting configuration")
		}
	}

	if v := c.String(distFlagName); v != "" {
		conf.DistDir = v
	}
	if v := c.String(uploaderFlagName); v != "" {
		conf.Uploader = v
	}
	if v := c.String(projectFlagName); v != "" {
		conf.Project = v
	}
	if v := c.String(stagingRepositoryFlagName); v != "" {
		conf.Staging.Repository = v
	}

	grip.Debug(message.Fields{
		"message":  "loaded configuration",
		"file":     path,
		"dist":     conf.DistDir,
		"uploader": conf.Uploader,
		"project":  conf.Project,
	})

	return conf, nil
}

func newPublisher(c *cli.Context) (*publisher.Publisher, error) {
	conf, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	return publisher.New(conf, publisher.NewRunner(), publisher.NewConsole(os.Stdin, os.Stdout))
}
