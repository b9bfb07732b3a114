// Package cfgloader loads and validates configuration at the start of an application.
package cfgloader

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/code19m/errx"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction = "production"
	EnvStaging    = "staging"
	EnvDev        = "dev"
	EnvLocal      = "local"
	EnvTest       = "test"

	CodeInvalidConfig = "INVALID_CONFIG"
)

// Load reads ${dir}/${ENVIRONMENT}.yaml into T.
//
// A .env file in the working directory is loaded first when present, and ${VAR}
// references in the YAML file are expanded from the environment. Fields missing
// from the file get the values of their `default` tags, then the result is
// checked against its `validate` tags.
//
// Example:
//
//	type Config struct {
//	    Host     string `yaml:"host" validate:"required"`
//	    Port     int    `yaml:"port" default:"8080"`
//	    Password string `yaml:"password" mask:"true"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var config T

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if reflect.ValueOf(&config).Elem().Kind() == reflect.Pointer {
		return config, invalid("type argument must not be a pointer", nil)
	}

	_ = godotenv.Load(o.DotEnvFiles...)

	env := o.Environment
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if !slices.Contains([]string{EnvProduction, EnvStaging, EnvDev, EnvLocal, EnvTest}, env) {
		return config, invalid(
			"ENVIRONMENT env variable is not set or invalid. Choices are: production, staging, dev, local, test",
			errx.D{"environment": env},
		)
	}

	path := filepath.Join(o.Dir, env+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidConfig), errx.WithDetails(errx.D{"path": path}))
	}

	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, &config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidConfig), errx.WithDetails(errx.D{"path": path}))
	}

	if err = defaults.Set(&config); err != nil {
		return config, errx.Wrap(err, errx.WithCode(CodeInvalidConfig))
	}

	if err = validateConfig(&config); err != nil {
		return config, err
	}

	if !o.Silent {
		printConfig(env, config)
	}

	return config, nil
}

// MustLoad is like Load but exits the process when configuration is unusable.
// Logging is not configured yet at that point, so failures go through slog.
func MustLoad[T any](opts ...Option) T {
	config, err := Load[T](opts...)
	if err != nil {
		slog.Error("[cfgloader]: " + err.Error())
		os.Exit(1)
	}
	return config
}

func validateConfig(config any) error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(config)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return errx.Wrap(err, errx.WithCode(CodeInvalidConfig))
	}

	failedFields := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		tag := fieldErr.Tag()
		if fieldErr.Param() != "" {
			tag += "=" + fieldErr.Param()
		}
		failedFields = append(failedFields, fmt.Sprintf("%s: %s", fieldErr.Namespace(), tag))
	}

	return invalid("invalid config fields -> "+strings.Join(failedFields, ", "), nil)
}

func invalid(msg string, details errx.D) error {
	return errx.New(msg,
		errx.WithCode(CodeInvalidConfig),
		errx.WithType(errx.T_Validation),
		errx.WithDetails(details),
	)
}
