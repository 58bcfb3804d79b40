package operations

import (
	"os"

	"github.com/mongodb/grip"
	"github.com/mongodb/pyrelease/publisher"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func requireFileExists(name string, hasDefault bool) cli.BeforeFunc {
	return func(c *cli.Context) error {
		path := c.String(name)
		if path == "" {
			if !hasDefault {
				return errors.Errorf("flag '--%s' was not specified", name)
			}
			return nil
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			return errors.Errorf("file '%s' does not exist", path)
		}

		return nil
	}
}

func requireStringFlag(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		if c.String(name) == "" {
			return errors.Errorf("flag '--%s' was not specified", name)
		}
		return nil
	}
}

func requireTarget(name string) cli.BeforeFunc {
	return func(c *cli.Context) error {
		return errors.Wrapf(publisher.Target(c.String(name)).Validate(),
			"flag '--%s' must be '%s' or '%s'", name, publisher.Staging, publisher.Production)
	}
}

func mergeBeforeFuncs(ops ...func(c *cli.Context) error) cli.BeforeFunc {
	return func(c *cli.Context) error {
		catcher := grip.NewBasicCatcher()

		for _, op := range ops {
			catcher.Add(op(c))
		}

		return catcher.Resolve()
	}
}
