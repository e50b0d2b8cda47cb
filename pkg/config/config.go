package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotpatina/pkg/errors"
	"github.com/arthur-debert/dotpatina/pkg/logging"
	"github.com/arthur-debert/dotpatina/pkg/paths"
)

// EnvPrefix prefixes every configuration environment variable.
const EnvPrefix = "DOTPATINA_"

// Config is the resolved application configuration.
type Config struct {
	Apply  ApplyConfig  `koanf:"apply"`
	Output OutputConfig `koanf:"output"`
	Trash  TrashConfig  `koanf:"trash"`
	Vars   VarsConfig   `koanf:"vars"`

	// Source is the user file that was loaded, if any.
	Source string `koanf:"-"`
}

type ApplyConfig struct {
	NoInput bool `koanf:"no_input"`
	NoTrash bool `koanf:"no_trash"`
}

type OutputConfig struct {
	NoColor bool `koanf:"no_color"`
}

type TrashConfig struct {
	Dir string `koanf:"dir"`
}

type VarsConfig struct {
	Files []string `koanf:"files"`
}

// Options selects the user file and carries explicit overrides keyed by
// dotted path, such as "apply.no_input".
type Options struct {
	File      string
	Overrides map[string]interface{}
}

// Load builds the configuration from all layers.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	source, err := userFile(opts.File)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail(errors.DetailPath, source)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}
	if os.Getenv("NO_COLOR") != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{"output.no_color": true}, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply NO_COLOR")
		}
	}

	// 4. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := cfg.resolveVarsFiles(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", source).
		Bool("no_input", cfg.Apply.NoInput).
		Bool("no_trash", cfg.Apply.NoTrash).
		Bool("no_color", cfg.Output.NoColor).
		Strs("vars_files", cfg.Vars.Files).
		Msg("configuration loaded")
	return &cfg, nil
}

// userFile picks the user configuration file. An explicit file must exist;
// the default location is optional.
func userFile(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(paths.EnvConfigFile)
	}
	if explicit != "" {
		path, err := paths.Abs(explicit)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "invalid config path %s", explicit)
		}
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", path).
				WithDetail(errors.DetailPath, path)
		}
		return path, nil
	}

	path := paths.ConfigFile()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// envKey maps DOTPATINA_APPLY__NO_INPUT to apply.no_input.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// resolveVarsFiles makes relative variable files absolute: against the
// user file's directory when one was loaded, else the working directory.
func (c *Config) resolveVarsFiles() error {
	files := make([]string, 0, len(c.Vars.Files))
	for _, f := range c.Vars.Files {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if c.Source != "" {
			files = append(files, paths.Resolve(filepath.Dir(c.Source), f))
			continue
		}
		abs, err := paths.Abs(f)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "invalid variables file %s", f)
		}
		files = append(files, abs)
	}
	c.Vars.Files = files
	return nil
}
