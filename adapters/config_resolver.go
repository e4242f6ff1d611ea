package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ansys/pypim/domain"
	"github.com/ansys/pypim/helpers"
	"github.com/ansys/pypim/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the path of the PIM configuration file.
// Environment references inside the value ($HOME, ${XDG_CONFIG_HOME}) are expanded.
const EnvConfigPath = "ANSYS_PLATFORM_INSTANCEMANAGEMENT_CONFIG"

// fileConfig is the on-disk configuration. Pointers distinguish a missing entry from a zero value.
type fileConfig struct {
	Version *int     `json:"version" yaml:"version" validate:"required"`
	PIM     *filePIM `json:"pim" yaml:"pim" validate:"required"`
}

type filePIM struct {
	URI     *string           `json:"uri" yaml:"uri" validate:"required"`
	Headers map[string]string `json:"headers" yaml:"headers" validate:"required"`
	TLS     *bool             `json:"tls" yaml:"tls" validate:"required"`
}

var configValidator = newConfigValidator()

// newConfigValidator reports fields under their file key so errors read "missing the entry uri".
func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// NewEnvConfigResolver creates the production interfaces.ConfigResolver: the configuration file path is read
// from EnvConfigPath through lookup on every call, so changes between calls take effect. Panics on nil lookup or logger.
//
// Parameters: lookup - environment accessor (os.LookupEnv in production, a map in tests); logger - go-kit logger.
//
// Returns: *EnvConfigResolver.
//
// Called from service.IsConfigured and service.ConnectFromEnv.
func NewEnvConfigResolver(lookup func(string) (string, bool), logger log.Logger) *EnvConfigResolver {
	return &EnvConfigResolver{
		lookup: helpers.NilPanic(lookup, "adapters.config_resolver.go: lookup is required"),
		logger: log.With(helpers.NilPanic(logger, "adapters.config_resolver.go: logger is required"), "component", "config_resolver"),
	}
}

// EnvConfigResolver implements interfaces.ConfigResolver on top of the environment and the filesystem.
type EnvConfigResolver struct {
	lookup func(string) (string, bool)
	logger log.Logger
}

var _ interfaces.ConfigResolver = (*EnvConfigResolver)(nil)

// IsConfigured resolves the configuration and reports whether it succeeded. Failures are logged at debug level.
func (r *EnvConfigResolver) IsConfigured() bool {
	_, err := r.Resolve()
	if err != nil {
		level.Debug(r.logger).Log("msg", "pim is not configured", "err", err)
		return false
	}
	return true
}

// Resolve reads and validates the configuration file named by EnvConfigPath.
//
// Returns: NotConfigured when the variable is unset or empty, or the file does not exist;
// InvalidConfiguration when the file cannot be read, parsed or validated.
func (r *EnvConfigResolver) Resolve() (domain.Configuration, error) {
	raw, ok := r.lookup(EnvConfigPath)
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.Configuration{}, domain.NewNotConfiguredError(EnvConfigPath+" is not set", nil)
	}
	path := os.Expand(raw, func(key string) string {
		v, _ := r.lookup(key)
		return v
	})
	level.Debug(r.logger).Log("msg", "initializing from configuration file", "path", path)
	cfg, err := LoadConfigurationFile(path)
	if err != nil {
		return domain.Configuration{}, err
	}
	if cfg.TLS {
		level.Info(r.logger).Log("msg", "the connection to the server will use a secure channel")
	}
	return cfg, nil
}

// LoadConfigurationFile reads the configuration at path. Files ending in .yaml or .yml are decoded as YAML,
// anything else as JSON. Unknown entries invalidate the file.
//
// Returns: (configuration, nil) on success; NotConfigured when path does not exist; InvalidConfiguration otherwise.
func LoadConfigurationFile(path string) (domain.Configuration, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Configuration{}, domain.NewNotConfiguredError(fmt.Sprintf("%s does not exist", path), err)
	}
	if err != nil {
		return domain.Configuration{}, domain.NewInvalidConfigurationError(path, "cannot read the file", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return domain.Configuration{}, domain.NewInvalidConfigurationError(path, "invalid yaml", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return domain.Configuration{}, domain.NewInvalidConfigurationError(path, "invalid json", err)
		}
		if dec.More() {
			return domain.Configuration{}, domain.NewInvalidConfigurationError(path, "invalid json", errors.New("trailing data after the configuration"))
		}
	}
	return parseConfiguration(path, raw)
}

func parseConfiguration(path string, raw fileConfig) (domain.Configuration, error) {
	// version is checked first so a newer file reports the version rather than a missing entry.
	if raw.Version != nil && *raw.Version != domain.SupportedConfigurationVersion {
		return domain.Configuration{}, domain.NewInvalidConfigurationError(path,
			fmt.Sprintf("unsupported version \"%d\", consider upgrading the client", *raw.Version), nil)
	}
	if err := configValidator.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return domain.Configuration{}, domain.NewInvalidConfigurationError(path,
				fmt.Sprintf("the configuration is missing the entry %s", verrs[0].Field()), err)
		}
		return domain.Configuration{}, domain.NewInvalidConfigurationError(path, "invalid configuration", err)
	}

	cfg := domain.Configuration{
		Version: *raw.Version,
		URI:     *raw.PIM.URI,
		Headers: helpers.MergeHeaders(raw.PIM.Headers),
		TLS:     *raw.PIM.TLS,
	}
	if cfg.TLS {
		token, ok := extractBearer(cfg.Headers)
		if !ok {
			return domain.Configuration{}, domain.NewInvalidConfigurationError(path,
				"an authorization header with a bearer token is required for a secure connection", nil)
		}
		cfg.AccessToken = token
	}
	return cfg, nil
}

// extractBearer removes the authorization header from headers and returns its token.
// The token is sent through per-RPC credentials instead of plain metadata.
func extractBearer(headers map[string]string) (string, bool) {
	value, ok := headers[helpers.HeaderAuthorization]
	if !ok {
		return "", false
	}
	token, ok := helpers.BearerToken(value)
	if !ok {
		return "", false
	}
	delete(headers, helpers.HeaderAuthorization)
	return token, true
}

// NewStaticConfigResolver creates an interfaces.ConfigResolver that always answers cfg, or err when err is not nil.
// Used by tests and by hosts that build the configuration themselves.
func NewStaticConfigResolver(cfg domain.Configuration, err error) *StaticConfigResolver {
	return &StaticConfigResolver{cfg: cfg, err: err}
}

// StaticConfigResolver implements interfaces.ConfigResolver with a fixed outcome.
type StaticConfigResolver struct {
	cfg domain.Configuration
	err error
}

var _ interfaces.ConfigResolver = (*StaticConfigResolver)(nil)

func (r *StaticConfigResolver) IsConfigured() bool { return r.err == nil }

func (r *StaticConfigResolver) Resolve() (domain.Configuration, error) {
	if r.err != nil {
		return domain.Configuration{}, r.err
	}
	cfg := r.cfg
	cfg.Headers = r.cfg.HeadersCopy()
	return cfg, nil
}
