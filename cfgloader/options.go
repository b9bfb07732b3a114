package cfgloader

// Options holds configuration options for Load.
type Options struct {
	// Silent disables printing the loaded configuration.
	Silent bool
	// Dir is the directory holding the per-environment YAML files.
	Dir string
	// Environment overrides the ENVIRONMENT variable.
	Environment string
	// DotEnvFiles are loaded into the process environment when present.
	// godotenv loads ".env" when the list is empty.
	DotEnvFiles []string
}

// Option is a functional option for configuring Load.
type Option func(*Options)

func defaultOptions() Options {
	return Options{Dir: "./config"}
}

// WithSilent disables config logging to stdout.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir reads configuration files from dir instead of ./config.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithEnvironment selects the environment instead of reading ENVIRONMENT.
func WithEnvironment(env string) Option {
	return func(o *Options) {
		o.Environment = env
	}
}

// WithDotEnv loads the given dotenv files instead of ".env".
func WithDotEnv(files ...string) Option {
	return func(o *Options) {
		o.DotEnvFiles = files
	}
}
