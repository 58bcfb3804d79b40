package publisher

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	assert := assert.New(t)
	conf := NewConfig()

	assert.NoError(conf.Validate())
	assert.Equal("dist", conf.DistDir)
	assert.Equal([]string{"*.whl", "*.tar.gz"}, conf.Patterns)
	assert.Equal("testpypi", conf.Staging.Repository)
	assert.Equal("", conf.Production.Repository)

	args, err := conf.UploaderCommand()
	assert.NoError(err)
	assert.Equal([]string{"python", "-m", "twine"}, args)

	// without a project name there is nothing to link to.
	assert.Equal("", conf.ProjectURL(Staging))
	assert.Equal("", conf.StagingInstallCommand())

	conf.Project = "gosql-connector"
	assert.Equal("https://test.pypi.org/project/gosql-connector/", conf.ProjectURL(Staging))
	assert.Equal("https://pypi.org/project/gosql-connector/", conf.ProjectURL(Production))
	assert.Equal("pip install -i https://test.pypi.org/simple/ gosql-connector", conf.StagingInstallCommand())
}

func TestConfigValidation(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"EmptyDistDir":    func(c *Config) { c.DistDir = "" },
		"NoPatterns":      func(c *Config) { c.Patterns = nil },
		"BadPattern":      func(c *Config) { c.Patterns = []string{"[*.whl"} },
		"EmptyUploader":   func(c *Config) { c.Uploader = "   " },
		"UnbalancedQuote": func(c *Config) { c.Uploader = "python -m 'twine" },
		"NoStagingRepo":   func(c *Config) { c.Staging.Repository = "" },
	} {
		t.Run(name, func(t *testing.T) {
			conf := NewConfig()
			mutate(conf)
			assert.Error(t, conf.Validate())
		})
	}
}

func TestConfigUploaderCommandQuoting(t *testing.T) {
	conf := NewConfig()
	conf.Uploader = `"/opt/python 3/bin/python" -m twine`

	args, err := conf.UploaderCommand()
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/python 3/bin/python", "-m", "twine"}, args)
}

func TestGetConfig(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "publisher-config")
	require.NoError(t, err)
	defer func() { assert.NoError(t, os.RemoveAll(tmpDir)) }()

	t.Run("MissingFile", func(t *testing.T) {
		conf, err := GetConfig(filepath.Join(tmpDir, "does-not-exist.yaml"))
		assert.Error(t, err)
		assert.Nil(t, conf)
	})
	t.Run("InvalidYAML", func(t *testing.T) {
		fn := filepath.Join(tmpDir, "invalid.yaml")
		require.NoError(t, ioutil.WriteFile(fn, []byte("project: [unterminated"), 0644))

		conf, err := GetConfig(fn)
		assert.Error(t, err)
		assert.Nil(t, conf)
	})
	t.Run("InvalidValues", func(t *testing.T) {
		fn := filepath.Join(tmpDir, "invalid-values.yaml")
		require.NoError(t, ioutil.WriteFile(fn, []byte("dist_dir: \"\"\n"), 0644))

		conf, err := GetConfig(fn)
		assert.Error(t, err)
		assert.Nil(t, conf)
	})
	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		fn := filepath.Join(tmpDir, "partial.yaml")
		data := []byte(`project: gosql-connector
dist_dir: build/dist
staging:
  repository: internal-staging
  url: https://staging.example.com/
`)
		require.NoError(t, ioutil.WriteFile(fn, data, 0644))

		conf, err := GetConfig(fn)
		require.NoError(t, err)
		assert.Equal(t, "gosql-connector", conf.Project)
		assert.Equal(t, "build/dist", conf.DistDir)
		assert.Equal(t, "python -m twine", conf.Uploader)
		assert.Equal(t, "internal-staging", conf.Staging.Repository)
		assert.Equal(t, "https://pypi.org", conf.Production.URL)
		assert.Equal(t, "https://staging.example.com/project/gosql-connector/", conf.ProjectURL(Staging))
	})
}
