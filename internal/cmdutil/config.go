package cmdutil

import (
	_ "embed"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchemaData []byte

var configSchema = func() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(configSchemaData))
	if err != nil {
		panic("invalid config schema: " + err.Error())
	}
	return schema
}()

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "DX7DUMP_CONFIG"

// Config holds option defaults loaded from a YAML file. Command line flags
// override these values.
type Config struct {
	Long       bool   `yaml:"long"`
	Compact    bool   `yaml:"compact"`
	Hex        bool   `yaml:"hex"`
	ASCII      bool   `yaml:"ascii"`
	ErrorsOnly bool   `yaml:"errors"`
	FindDupes  bool   `yaml:"find-dupes"`
	NoBackup   bool   `yaml:"no-backup"`
	AssumeYes  bool   `yaml:"yes"`
	Format     string `yaml:"format"`
}

// ConfigPath returns path if set, or the value of $DX7DUMP_CONFIG.
func ConfigPath(path string) string {
	if path != "" {
		return path
	}
	return os.Getenv(ConfigEnv)
}

// LoadConfig reads a config file. An empty path yields the zero config.
func LoadConfig(path string) (*Config, error) {
	cfg := new(Config)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "can't load config")
	}

	// The document is checked against the schema before it is decoded, so
	// misspelled keys and wrong value types are reported by name.
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	result, err := configSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	if !result.Valid() {
		var msgs []string
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, errors.Errorf("invalid config %s: %s", path, strings.Join(msgs, "; "))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}
