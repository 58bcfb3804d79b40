package publisher

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindArtifacts(t *testing.T) {
	patterns := []string{"*.whl", "*.tar.gz"}

	tmpDir, err := ioutil.TempDir("", "publisher-artifacts")
	require.NoError(t, err)
	defer func() { assert.NoError(t, os.RemoveAll(tmpDir)) }()

	t.Run("MissingDirectory", func(t *testing.T) {
		artifacts, err := FindArtifacts(filepath.Join(tmpDir, "missing"), patterns)
		assert.True(t, IsMissingArtifacts(err))
		assert.Nil(t, artifacts)
	})
	t.Run("EmptyDirectory", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "empty")
		require.NoError(t, os.Mkdir(dir, 0755))

		artifacts, err := FindArtifacts(dir, patterns)
		assert.True(t, IsMissingArtifacts(err))
		assert.Nil(t, artifacts)
	})
	t.Run("IgnoresOtherFilesAndDirectories", func(t *testing.T) {
		dir := filepath.Join(tmpDir, "mixed")
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.whl"), 0755))
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "pkg-2.0.zip"), []byte("z"), 0644))
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "pkg-2.0.tar.gz"), []byte("abc"), 0644))
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "pkg-2.0-py3-none-any.whl"), []byte("abcd"), 0644))
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "pkg-2.0-cp311-cp311-linux_x86_64.whl"), []byte("ab"), 0644))

		artifacts, err := FindArtifacts(dir, patterns)
		require.NoError(t, err)
		require.Len(t, artifacts, 3)

		assert.Equal(t, "pkg-2.0-cp311-cp311-linux_x86_64.whl", artifacts[0].Name)
		assert.Equal(t, int64(2), artifacts[0].Size)
		assert.Equal(t, "pkg-2.0-py3-none-any.whl", artifacts[1].Name)
		assert.Equal(t, "pkg-2.0.tar.gz", artifacts[2].Name)
		assert.Equal(t, filepath.Join(dir, "pkg-2.0.tar.gz"), artifacts[2].Path)
		assert.Equal(t, int64(3), artifacts[2].Size)

		for _, a := range artifacts {
			assert.Equal(t, "2.0", a.Version)
		}
	})
}

func TestArtifactString(t *testing.T) {
	a := Artifact{Name: "pkg-1.0.tar.gz", Size: 3 * 1024 * 1024 / 2}
	assert.Equal(t, "pkg-1.0.tar.gz (1.5MB)", a.String())
}

func TestParseArtifactVersion(t *testing.T) {
	for name, expected := range map[string]string{
		"pkg-1.0-py3-none-any.whl":               "1.0",
		"gosql_connector-1.2.3-py3-none-any.whl": "1.2.3",
		"pkg-1.0-1-py3-none-any.whl":             "1.0",
		"gosql-connector-1.2.3.tar.gz":           "1.2.3",
		"pkg-1.0rc1.tar.gz":                      "1.0rc1",
		"pkg-2024.1.tar.gz":                      "2024.1",
		"broken.whl":                             "",
		"noversion.tar.gz":                       "",
		"pkg-.tar.gz":                            "",
		"README.md":                              "",
	} {
		assert.Equal(t, expected, parseArtifactVersion(name), name)
	}
}

func TestReleaseVersions(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(ReleaseVersions(nil))
	assert.Equal([]string{"1.0"}, ReleaseVersions([]Artifact{
		{Version: "1.0"}, {Version: "1.0"}, {Version: ""},
	}))
	// "1.0" and "1.0.0" are the same release; the first spelling wins.
	assert.Equal([]string{"1.0"}, ReleaseVersions([]Artifact{
		{Version: "1.0"}, {Version: "1.0.0"},
	}))
	assert.Equal([]string{"1.0", "1.2", "1.10", "1.0rc1"}, ReleaseVersions([]Artifact{
		{Version: "1.10"}, {Version: "1.0rc1"}, {Version: "1.2"}, {Version: "1.0"},
	}))
}
