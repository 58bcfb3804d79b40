package operations

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/mongodb/pyrelease"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

type versionInfo struct {
	Build string `json:"build"`
	Go    string `json:"go"`
}

func (v versionInfo) String() string {
	return strings.Join([]string{
		"pyrelease Version Info:",
		"\n\t", "Build: ", v.Build,
		"\n\t", "Go: ", v.Go,
	}, "")
}

// Version returns a cli.Command that prints build information.
func Version() cli.Command {
	return cli.Command{
		Name:  "version",
		Usage: "prints version information",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "json",
				Usage: "specify this option to output data as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			info := versionInfo{
				Build: pyrelease.BuildRevision,
				Go:    runtime.Version(),
			}

			if c.Bool("json") {
				out, err := json.MarshalIndent(info, "", "   ")
				if err != nil {
					return errors.Wrap(err, "problem marshaling json")
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(info)
			return nil
		},
	}
}
