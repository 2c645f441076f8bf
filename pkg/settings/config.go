package settings

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/huynhanx03/go-ringqueue/pkg/utils"
)

const (
	defaultCapacity = 10

	// MaxCapacity bounds queue.capacity so rounding up to a power of two
	// cannot overflow.
	MaxCapacity = 1 << 30
)

// Config is the root configuration loaded from YAML.
type Config struct {
	Logger Logger `yaml:"logger"`
	Queue  Queue  `yaml:"queue"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error dpanic panic fatal"`
	FileLogName string `yaml:"file_log_name"`
	MaxBackups  int    `yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `yaml:"max_age" validate:"gte=0"`
	MaxSize     int    `yaml:"max_size" validate:"gte=0"`
	Compress    bool   `yaml:"compress"`
}

// Queue is the configuration for ring queues
type Queue struct {
	Capacity          int  `yaml:"capacity" validate:"gt=0,lte=1073741824"`
	RoundToPowerOfTwo bool `yaml:"round_to_power_of_two"`
}

// EffectiveCapacity returns the capacity to allocate, rounded up to a power
// of two when RoundToPowerOfTwo is set. Values outside (0, MaxCapacity] are
// returned unchanged and left for Validate or queue.New to reject.
func (q Queue) EffectiveCapacity() int {
	if q.RoundToPowerOfTwo && q.Capacity > 0 && q.Capacity <= MaxCapacity {
		return utils.CeilToPowerOfTwo(q.Capacity)
	}
	return q.Capacity
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logger: Logger{LogLevel: "info"},
		Queue:  Queue{Capacity: defaultCapacity},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	return errors.Wrap(validate.Struct(c), "invalid config")
}
