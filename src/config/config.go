package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NumFloors        = 10
	NumElevators     = 4
	InitialFloor     = 1
	TravelDuration   = 10 * time.Second
	StopDuration     = 10 * time.Second
	CallInterval     = 7 * time.Second
	StatusInterval   = 30 * time.Second
	EventLogSize     = 200
	EnvPrefix        = "ELEVSIM_"
	DefaultLogLevel  = "info"
	DefaultConfigEnv = ".env"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is immutable once a run has started.
type Config struct {
	TotalFloors         int           `yaml:"total_floors"`
	TotalElevators      int           `yaml:"total_elevators"`
	InitialFloor        int           `yaml:"initial_floor"`
	FloorTravelDuration time.Duration `yaml:"floor_travel_duration"`
	StopDuration        time.Duration `yaml:"stop_duration"`

	CallInterval   time.Duration `yaml:"call_interval"`
	StatusInterval time.Duration `yaml:"status_interval"`
	SimDuration    time.Duration `yaml:"sim_duration"`
	Seed           int64         `yaml:"seed"`

	EventLogSize int    `yaml:"event_log_size"`
	LogLevel     string `yaml:"log_level"`
	LogFile      string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		TotalFloors:         NumFloors,
		TotalElevators:      NumElevators,
		InitialFloor:        InitialFloor,
		FloorTravelDuration: TravelDuration,
		StopDuration:        StopDuration,
		CallInterval:        CallInterval,
		StatusInterval:      StatusInterval,
		EventLogSize:        EventLogSize,
		LogLevel:            DefaultLogLevel,
	}
}

// Load starts from Default, applies the YAML file at path and then the
// environment (after loading envFile into it). Empty paths are skipped.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to open config file: %w", err)
		}
		defer file.Close()

		// An empty document (or only comments) decodes to io.EOF: no overrides.
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("failed to decode config YAML: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.TotalFloors < 1 {
		errs = append(errs, fmt.Errorf("%w: total_floors must be >= 1, got %d", ErrInvalidConfig, c.TotalFloors))
	}
	if c.TotalElevators < 1 {
		errs = append(errs, fmt.Errorf("%w: total_elevators must be >= 1, got %d", ErrInvalidConfig, c.TotalElevators))
	}
	if c.InitialFloor < 1 || c.InitialFloor > c.TotalFloors {
		errs = append(errs, fmt.Errorf("%w: initial_floor must be within [1, %d], got %d", ErrInvalidConfig, c.TotalFloors, c.InitialFloor))
	}
	if c.FloorTravelDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: floor_travel_duration must be > 0, got %s", ErrInvalidConfig, c.FloorTravelDuration))
	}
	if c.StopDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: stop_duration must be > 0, got %s", ErrInvalidConfig, c.StopDuration))
	}
	if c.CallInterval < 0 || c.StatusInterval < 0 || c.SimDuration < 0 {
		errs = append(errs, fmt.Errorf("%w: simulation intervals must not be negative", ErrInvalidConfig))
	}
	if c.EventLogSize < 0 {
		errs = append(errs, fmt.Errorf("%w: event_log_size must not be negative, got %d", ErrInvalidConfig, c.EventLogSize))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) error {
	ints := map[string]*int{
		"TOTAL_FLOORS":    &cfg.TotalFloors,
		"TOTAL_ELEVATORS": &cfg.TotalElevators,
		"INITIAL_FLOOR":   &cfg.InitialFloor,
		"EVENT_LOG_SIZE":  &cfg.EventLogSize,
	}
	for key, dst := range ints {
		raw, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, key, err)
		}
		*dst = v
	}

	durations := map[string]*time.Duration{
		"FLOOR_TRAVEL_DURATION": &cfg.FloorTravelDuration,
		"STOP_DURATION":         &cfg.StopDuration,
		"CALL_INTERVAL":         &cfg.CallInterval,
		"STATUS_INTERVAL":       &cfg.StatusInterval,
		"SIM_DURATION":          &cfg.SimDuration,
	}
	for key, dst := range durations {
		raw, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, key, err)
		}
		*dst = v
	}

	if raw, ok := os.LookupEnv(EnvPrefix + "SEED"); ok {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %sSEED: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Seed = v
	}
	if raw, ok := os.LookupEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = raw
	}
	if raw, ok := os.LookupEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.LogFile = raw
	}
	return nil
}
