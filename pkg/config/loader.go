package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	rerrors "github.com/wzhd/rotor/pkg/errors"
	"github.com/wzhd/rotor/pkg/logging"
)

const (
	// EnvPrefix starts every environment variable read as configuration
	EnvPrefix = "ROTOR_"

	// EnvConfig names the configuration file when --config is not given
	EnvConfig = EnvPrefix + "CONFIG"
)

// searchNames are tried, in order, under every XDG config directory
var searchNames = []string{"rotor/rotor.toml", "rotor/rotor.yaml", "rotor/rotor.yml"}

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// FindConfigFile returns the configuration file to load: explicit when
// set, then $ROTOR_CONFIG, then the first rotor.{toml,yaml,yml} in the XDG
// config directories. An empty result means there is no configuration
// file.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	for _, name := range searchNames {
		if p, err := xdg.SearchConfigFile(name); err == nil {
			return p
		}
	}
	return ""
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, rerrors.Newf(rerrors.ErrConfigLoad, "unsupported configuration format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// Load reads the layered configuration. path is the configuration file;
// when empty only the defaults and the environment apply.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrInternal, "failed to load defaults")
	}

	// 2. Configuration file
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, rerrors.Wrapf(err, rerrors.ErrConfigLoad, "failed to read configuration %s", path)
		}
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, rerrors.Wrapf(err, rerrors.ErrConfigParse, "failed to parse configuration %s", path)
		}
		logger.Debug().Str("path", path).Msg("loaded configuration file")
	}

	// 3. Environment variables
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		if s == EnvConfig {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrConfigLoad, "failed to load environment variables")
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, err
	}
	cfg.Source = path
	return cfg, nil
}

// LoadMap decodes an already parsed configuration, layered over the
// defaults and without consulting the environment.
func LoadMap(m map[string]interface{}) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrInternal, "failed to load defaults")
	}
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrConfigParse, "failed to load configuration map")
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
				mapToStringMapHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, rerrors.Wrap(err, rerrors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// mapToStringMapHookFunc renders scalar values of string maps, so that
// `enabled = false` and `enabled = "false"` mean the same.
func mapToStringMapHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.Map || t.Kind() != reflect.Map || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		m, ok := data.(map[string]interface{})
		if !ok {
			return data, nil
		}
		out := make(map[string]string, len(m))
		for k, v := range m {
			switch v := v.(type) {
			case string:
				out[k] = v
			case bool, int, int64, float64:
				out[k] = fmt.Sprint(v)
			default:
				return nil, rerrors.Newf(rerrors.ErrConfigParse, "value of %q is not a scalar", k)
			}
		}
		return out, nil
	}
}
