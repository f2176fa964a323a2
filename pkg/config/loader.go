package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/warforge/pkg/errors"
	"github.com/arthur-debert/warforge/pkg/logging"
	"github.com/arthur-debert/warforge/pkg/types"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes every environment override. A double underscore
// separates levels: WARFORGE_WAR__ARCHIVE_CLASSES sets war.archive_classes.
const EnvPrefix = "WARFORGE_"

// ProjectFileNames are tried in order in the base directory.
var ProjectFileNames = []string{"warforge.toml", "warforge.yaml", "warforge.yml"}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// FS reads the project file, the pom and artifact files.
	FS types.FS
	// BaseDir is where the project file is looked for. Defaults to ".".
	BaseDir string
	// ConfigFile names the project file explicitly; it must exist.
	ConfigFile string
	// UserConfigFile overrides the per-user file. Empty uses DefaultUserConfigFile.
	UserConfigFile string
	// NoUserConfig skips the per-user file entirely.
	NoUserConfig bool
	// Overrides are applied last, keyed by dotted path (war.output_dir).
	Overrides map[string]interface{}
}

// DefaultUserConfigFile is $XDG_CONFIG_HOME/warforge/config.toml.
func DefaultUserConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "warforge", "config.toml")
}

// Load reads every configuration layer, decodes the result and resolves it
// against the project base directory.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput, "configuration loading requires a filesystem")
	}
	searchDir := opts.BaseDir
	if searchDir == "" {
		searchDir = "."
	}

	k := koanf.New(".")
	var sources []string

	// 1. embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. per-user file
	if !opts.NoUserConfig {
		userFile := opts.UserConfigFile
		if userFile == "" {
			userFile = DefaultUserConfigFile()
		}
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), parserFor(userFile)); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", userFile).
					WithDetail("path", userFile)
			}
			sources = append(sources, userFile)
			logger.Debug().Str("path", userFile).Msg("Loaded user config")
		}
	}

	// 3. project file
	projectFile, err := findProjectFile(opts.FS, searchDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if projectFile != "" {
		data, err := opts.FS.ReadFile(projectFile)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read %s", projectFile).
				WithDetail("path", projectFile)
		}
		if err := k.Load(&rawBytesProvider{bytes: data}, parserFor(projectFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse %s", projectFile).
				WithDetail("path", projectFile)
		}
		sources = append(sources, projectFile)
		logger.Debug().Str("path", projectFile).Msg("Loaded project config")
	}

	// 4. environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 5. flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources

	if err := cfg.resolve(opts.FS, searchDir); err != nil {
		return nil, err
	}
	logger.Debug().
		Str("base_dir", cfg.Project.BaseDir).
		Strs("sources", sources).
		Int("artifacts", len(cfg.Dependencies.Artifacts)).
		Msg("Configuration resolved")
	return cfg, nil
}

// Defaults returns the embedded defaults, unresolved.
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
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
	return &cfg, nil
}

// envKey maps WARFORGE_WAR__OUTPUT_DIR to war.output_dir.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func findProjectFile(fs types.FS, dir, explicit string) (string, error) {
	if explicit != "" {
		if _, err := fs.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	for _, name := range ProjectFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}
