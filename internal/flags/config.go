package flags

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the YAML config file schema, an alternative to repeating -link
// flags on every run.
type Config struct {
	Links    []string `yaml:"links"`
	Revision string   `yaml:"revision"`
}

func readConfig(path string) (Config, error) {
	var config Config
	if path == "" {
		return config, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(buf, &config)
	return config, errors.Wrapf(err, "invalid config file %q", path)
}
