/*
Configuration

The Config object describes where the publisher finds artifacts, how
it invokes the external uploader, and which indexes it targets. All
fields have defaults, so a configuration file is optional.
*/
package publisher

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultConfigFile is the configuration file read from the working
	// directory when no path is given explicitly.
	DefaultConfigFile = "pyrelease.yaml"

	defaultDistDir           = "dist"
	defaultUploader          = "python -m twine"
	defaultStagingRepository = "testpypi"
	defaultStagingURL        = "https://test.pypi.org"
	defaultProductionURL     = "https://pypi.org"
)

// Config provides the schema for the publisher configuration file.
type Config struct {
	Project    string      `bson:"project" json:"project" yaml:"project"`
	DistDir    string      `bson:"dist_dir" json:"dist_dir" yaml:"dist_dir"`
	Uploader   string      `bson:"uploader" json:"uploader" yaml:"uploader"`
	Patterns   []string    `bson:"patterns" json:"patterns" yaml:"patterns"`
	Staging    IndexConfig `bson:"staging" json:"staging" yaml:"staging"`
	Production IndexConfig `bson:"production" json:"production" yaml:"production"`

	fileName string
}

// IndexConfig describes one package index. Repository is the name the
// uploader knows the index by; an empty Repository means the
// uploader's default, which is the production index.
type IndexConfig struct {
	Repository string `bson:"repository" json:"repository" yaml:"repository"`
	URL        string `bson:"url" json:"url" yaml:"url"`
}

// NewConfig returns a configuration populated with default values.
func NewConfig() *Config {
	return &Config{
		DistDir:  defaultDistDir,
		Uploader: defaultUploader,
		Patterns: []string{"*.whl", "*.tar.gz"},
		Staging: IndexConfig{
			Repository: defaultStagingRepository,
			URL:        defaultStagingURL,
		},
		Production: IndexConfig{
			URL: defaultProductionURL,
		},
	}
}

// GetConfig reads the named YAML file over the defaults and validates
// the result.
func GetConfig(fileName string) (*Config, error) {
	c := NewConfig()

	if err := c.read(fileName); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) read(fileName string) error {
	c.fileName = fileName

	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return errors.Wrapf(err, "problem reading config file '%s'", fileName)
	}

	return errors.Wrapf(yaml.Unmarshal(data, c), "problem parsing config file '%s'", fileName)
}

// Validate checks the configuration for problems and returns all of
// them as a single error.
func (c *Config) Validate() error {
	catcher := grip.NewBasicCatcher()

	catcher.NewWhen(c.DistDir == "", "output directory must be specified")
	catcher.NewWhen(len(c.Patterns) == 0, "at least one artifact pattern must be specified")
	for _, p := range c.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			catcher.Add(errors.Wrapf(err, "invalid artifact pattern '%s'", p))
		}
	}

	if _, err := c.UploaderCommand(); err != nil {
		catcher.Add(err)
	}

	catcher.NewWhen(c.Staging.Repository == "", "staging repository name must be specified")

	return catcher.Resolve()
}

// UploaderCommand splits the configured uploader command into the
// argument vector used as the prefix of every invocation.
func (c *Config) UploaderCommand() ([]string, error) {
	args, err := shlex.Split(c.Uploader, true)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse uploader command '%s'", c.Uploader)
	}
	if len(args) == 0 {
		return nil, errors.New("uploader command must be specified")
	}

	return args, nil
}

// ProjectURL returns the project page on the index for the target, or
// an empty string when the project name or index URL is unknown.
func (c *Config) ProjectURL(t Target) string {
	base := c.index(t).URL
	if c.Project == "" || base == "" {
		return ""
	}

	return fmt.Sprintf("%s/project/%s/", strings.TrimRight(base, "/"), c.Project)
}

// StagingInstallCommand returns the command an operator runs to try
// the release from the staging index.
func (c *Config) StagingInstallCommand() string {
	if c.Project == "" || c.Staging.URL == "" {
		return ""
	}

	return fmt.Sprintf("pip install -i %s/simple/ %s", strings.TrimRight(c.Staging.URL, "/"), c.Project)
}

func (c *Config) index(t Target) IndexConfig {
	if t == Staging {
		return c.Staging
	}

	return c.Production
}
