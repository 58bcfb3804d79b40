/*
Package operations contains the integration between the publisher and
the user-exposed command line interface.

The public functions in this package return cli.Command objects that
are registered with the application in cmd/pyrelease. Flag parsing,
configuration loading and the mapping of results to errors happen
here; the release workflow itself is implemented in the publisher
package.
*/
package operations

// This file is documentation only.
