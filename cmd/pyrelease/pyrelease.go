package main

import (
	"os"
	"strings"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/mongodb/grip/send"
	"github.com/mongodb/pyrelease"
	"github.com/mongodb/pyrelease/operations"
	"github.com/urfave/cli"
)

const defaultCommand = "publish"

func main() {
	// this is where the main action of the program starts. The
	// command line interface is managed by the cli package and
	// its objects/structures. This, plus the basic configuration
	// in buildApp(), is all that's necessary for bootstrapping the
	// environment. Any error exits with status 1.
	app := buildApp()
	err := app.Run(withDefaultCommand(os.Args))
	grip.EmergencyFatal(err)
}

// we build the app outside of main so that we can test the operation
func buildApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pyrelease"
	app.Usage = "publish python distributions to staging and production package indexes"
	app.Version = pyrelease.BuildRevision

	// Register sub-commands here.
	app.Commands = []cli.Command{
		operations.Publish(),
		operations.Check(),
		operations.Upload(),
		operations.Version(),
	}

	// These are global options. Use this to configure logging or
	// other options independent from specific sub commands.
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "level",
			Value: "info",
			Usage: "Specify lowest visible loglevel as string: 'emergency|alert|critical|error|warning|notice|info|debug'",
		},
	}

	app.Before = func(c *cli.Context) error {
		return loggingSetup(app.Name, c.String("level"))
	}

	return app
}

// withDefaultCommand runs the interactive workflow when the binary is
// invoked with global flags only. Help, version and anything that is
// not a global flag leave the arguments unchanged.
func withDefaultCommand(args []string) []string {
	if len(args) == 0 {
		return args
	}

	for i := 1; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--level" || arg == "-level":
			if i+1 == len(args) {
				return args
			}
			i++
		case strings.HasPrefix(arg, "--level=") || strings.HasPrefix(arg, "-level="):
		default:
			return args
		}
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, args...)

	return append(out, defaultCommand)
}

func loggingSetup(name, l string) error {
	if err := grip.SetSender(send.MakeErrorLogger()); err != nil {
		return err
	}
	grip.SetName(name)

	sender := grip.GetSender()
	info := sender.Level()
	info.Threshold = level.FromString(l)

	return sender.SetLevel(info)
}
