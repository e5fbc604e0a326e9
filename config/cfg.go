package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	FetchConfig struct {
		UserAgent       string        `yaml:"user_agent" validate:"required"`
		PageTimeout     time.Duration `yaml:"page_timeout" validate:"gt=0"`
		ResourceTimeout time.Duration `yaml:"resource_timeout" validate:"gt=0"`
		ForceCharset    string        `yaml:"force_charset"`
	}

	BrowserConfig struct {
		Enable    bool          `yaml:"enable"`
		Headless  bool          `yaml:"headless"`
		Stealth   bool          `yaml:"stealth"`
		RemoteURL string        `yaml:"remote_url" validate:"omitempty,url"`
		Timeout   time.Duration `yaml:"timeout" validate:"required_if=Enable true"`
	}

	TemplatesConfig struct {
		Directory string `yaml:"directory" sanitize:"path_clean" validate:"omitempty,dir"`
	}

	OutputConfig struct {
		ProjectsDir         string `yaml:"projects_dir" sanitize:"path_clean" validate:"required"`
		ProjectNameTemplate string `yaml:"project_name_template"`
		Transliterate       bool   `yaml:"transliterate"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Fetch     FetchConfig     `yaml:"fetch"`
		Browser   BrowserConfig   `yaml:"browser"`
		Templates TemplatesConfig `yaml:"templates"`
		Output    OutputConfig    `yaml:"output"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above
	ProjectNameTemplateFieldName TemplateFieldName = "project_name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(ProjectNameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
