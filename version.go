package pyrelease

// BuildRevision is the git revision the binary was built from. It is
// set at link time with:
//
//	-ldflags "-X github.com/mongodb/pyrelease.BuildRevision=$(git rev-parse HEAD)"
var BuildRevision = ""
