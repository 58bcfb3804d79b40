/*
Package pyrelease is a tool for publishing built Python distributions
(wheels and source archives) to a package index, first to a staging
index and then, once an operator confirms, to the production index.

# Architecture and Organization

The pyrelease binary is built from the "cmd/pyrelease" package, with a
command that resembles the following:

	go build -o pyrelease ./cmd/pyrelease

The command line interface uses the urfave/cli package, with the
implementation of entry points in the "operations" package. The upload
workflow itself, including artifact discovery, the calls to the
external uploader and the interactive menu, lives in the "publisher"
package.
*/
package pyrelease
