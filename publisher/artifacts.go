package publisher

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/blang/semver"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
)

const megabyte = 1024 * 1024

// Artifact is a distributable package file found in the output
// directory.
type Artifact struct {
	Name    string `bson:"name" json:"name" yaml:"name"`
	Path    string `bson:"path" json:"path" yaml:"path"`
	Size    int64  `bson:"size" json:"size" yaml:"size"`
	Version string `bson:"version" json:"version" yaml:"version"`
}

func (a Artifact) String() string {
	return fmt.Sprintf("%s (%.1fMB)", a.Name, float64(a.Size)/megabyte)
}

// FindArtifacts returns the files in dir that match any of the
// patterns, ordered by pattern and then by name. It returns a
// MissingArtifactsError when dir does not exist or nothing matches.
func FindArtifacts(dir string, patterns []string) ([]Artifact, error) {
	if !utility.FileExists(dir) {
		return nil, &MissingArtifactsError{
			Directory: dir,
			Patterns:  patterns,
			Reason:    "directory not found",
		}
	}

	infos, err := ioutil.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "problem reading output directory '%s'", dir)
	}

	var out []Artifact
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		var group []Artifact
		for _, info := range infos {
			if info.IsDir() || seen[info.Name()] {
				continue
			}

			ok, err := filepath.Match(pattern, info.Name())
			if err != nil {
				return nil, errors.Wrapf(err, "invalid artifact pattern '%s'", pattern)
			}
			if !ok {
				continue
			}

			seen[info.Name()] = true
			group = append(group, Artifact{
				Name:    info.Name(),
				Path:    filepath.Join(dir, info.Name()),
				Size:    info.Size(),
				Version: parseArtifactVersion(info.Name()),
			})
		}

		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		out = append(out, group...)
	}

	if len(out) == 0 {
		return nil, &MissingArtifactsError{
			Directory: dir,
			Patterns:  patterns,
			Reason:    "no matching files",
		}
	}

	return out, nil
}

// parseArtifactVersion extracts the release version from a wheel
// ("name-version-python-abi-platform.whl") or source archive
// ("name-version.tar.gz") file name, as written in the name.
func parseArtifactVersion(name string) string {
	switch {
	case strings.HasSuffix(name, ".whl"):
		parts := strings.Split(strings.TrimSuffix(name, ".whl"), "-")
		if len(parts) < 5 {
			return ""
		}
		return parts[1]
	case strings.HasSuffix(name, ".tar.gz"):
		base := strings.TrimSuffix(name, ".tar.gz")
		idx := strings.LastIndex(base, "-")
		if idx <= 0 || idx == len(base)-1 {
			return ""
		}
		return base[idx+1:]
	default:
		return ""
	}
}

type releaseVersion struct {
	raw    string
	parsed semver.Version
	ok     bool
}

func (v releaseVersion) equals(other releaseVersion) bool {
	if v.ok && other.ok {
		return v.parsed.Equals(other.parsed)
	}

	return v.raw == other.raw
}

// ReleaseVersions returns the distinct versions across the artifacts
// as they appear in the file names. Versions semver can read compare
// by value, so "1.0" and "1.0.0" count once, and sort ahead of the
// rest in ascending order.
func ReleaseVersions(artifacts []Artifact) []string {
	var versions []releaseVersion

	for _, a := range artifacts {
		if a.Version == "" {
			continue
		}

		rv := releaseVersion{raw: a.Version}
		if v, err := semver.ParseTolerant(a.Version); err == nil {
			rv.parsed = v
			rv.ok = true
		}

		dup := false
		for _, existing := range versions {
			if existing.equals(rv) {
				dup = true
				break
			}
		}
		if !dup {
			versions = append(versions, rv)
		}
	}

	sort.SliceStable(versions, func(i, j int) bool {
		switch {
		case versions[i].ok && versions[j].ok:
			return versions[i].parsed.LT(versions[j].parsed)
		case versions[i].ok != versions[j].ok:
			return versions[i].ok
		default:
			return versions[i].raw < versions[j].raw
		}
	})

	out := make([]string, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.raw)
	}

	return out
}

func artifactPaths(artifacts []Artifact) []string {
	out := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, a.Path)
	}

	return out
}
