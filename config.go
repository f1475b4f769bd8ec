package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/somwatee/HATS-v4/engine"
	"github.com/somwatee/HATS-v4/shared"
)

const (
	// defaultOutputDir is the default directory reports are written to.
	defaultOutputDir = "output"
	// defaultLogLevel is the default log level.
	defaultLogLevel = "info"
	// defaultTimeframe is the default base bar timeframe.
	defaultTimeframe = "1m"
)

// durationType is the reflected type of time.Duration.
var durationType = reflect.TypeOf(time.Duration(0))

// Config is the configuration struct for the service.
type Config struct {
	// BarsFilepath is the filepath to the base bar series.
	BarsFilepath string
	// Timeframe is the base bar timeframe (1m, 5m, 15m, 1H or the M1 style aliases).
	Timeframe string
	// HTFMultiplier is the number of base intervals per higher timeframe bucket.
	HTFMultiplier int
	// HTFCloseStamp joins higher timeframe values at bucket close instead of bucket open.
	HTFCloseStamp bool
	// GapLookback caps the number of bars scanned backwards for an imbalance.
	GapLookback int
	// ADXThreshold is the minimum higher timeframe adx required to confirm a trend.
	ADXThreshold float64
	// ClassifierThreshold is the minimum class probability for a fallback signal.
	ClassifierThreshold float64
	// ClassifierURL is the base url of the inference service.
	ClassifierURL string
	// ClassifierTimeout is the deadline of a single classifier call.
	ClassifierTimeout time.Duration
	// StrictFallback restricts the fallback path to rows with a structure shift and an imbalance.
	StrictFallback bool
	// OutputDir is the directory reports are written to.
	OutputDir string
	// DatabaseEndpoint is the rqlite endpoint runs are persisted to.
	DatabaseEndpoint string
	// DatabaseUser is the database user.
	DatabaseUser string
	// DatabasePass is the database user pass.
	DatabasePass string
	// Interval is the period between scheduled re-runs.
	Interval time.Duration
	// LogLevel is the minimum logged level.
	LogLevel string

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.BarsFilepath == "" {
		errs = errors.Join(errs, fmt.Errorf("bars filepath cannot be an empty string"))
	}
	if cfg.Timeframe != "" {
		_, err := shared.ParseTimeframe(cfg.Timeframe)
		if err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if cfg.HTFMultiplier < 0 {
		errs = errors.Join(errs, fmt.Errorf("htf multiplier cannot be negative"))
	}
	if cfg.GapLookback < 0 {
		errs = errors.Join(errs, fmt.Errorf("gap lookback cannot be negative"))
	}
	if cfg.ADXThreshold < 0 {
		errs = errors.Join(errs, fmt.Errorf("adx threshold cannot be negative"))
	}
	if cfg.ClassifierThreshold < 0 || cfg.ClassifierThreshold > 1 {
		errs = errors.Join(errs, fmt.Errorf("classifier threshold must be within [0, 1]"))
	}
	if cfg.Interval < 0 {
		errs = errors.Join(errs, fmt.Errorf("interval cannot be negative"))
	}
	if cfg.LogLevel != "" {
		_, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("invalid log level: %w", err))
		}
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	if val.Elem().Type() == durationType {
		var def time.Duration
		if defValue != "" {
			def, _ = time.ParseDuration(defValue)
		}
		flag.DurationVar(value.(*time.Duration), name, def, usage)
		return nil
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Float64:
		// Without an environment value the preset field value is the default.
		def := *value.(*float64)
		if defValue != "" {
			def, _ = strconv.ParseFloat(defValue, 64)
		}
		flag.Float64Var(value.(*float64), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg.ADXThreshold = engine.DefaultADXThreshold
	cfg.ClassifierThreshold = engine.DefaultClassifierThreshold

	// Register command line arguments using loaded environment variables as defaults.
	flags := []struct {
		name  string
		value interface{}
		usage string
	}{
		{"barsfilepath", &cfg.BarsFilepath, "the base bar series filepath (.json or .csv)"},
		{"timeframe", &cfg.Timeframe, "the base bar timeframe"},
		{"htfmultiplier", &cfg.HTFMultiplier, "the base bars per higher timeframe bucket"},
		{"htfclosestamp", &cfg.HTFCloseStamp, "the higher timeframe bucket close join flag"},
		{"gaplookback", &cfg.GapLookback, "the imbalance scan lookback in bars"},
		{"adxthreshold", &cfg.ADXThreshold, "the higher timeframe adx threshold"},
		{"classifierthreshold", &cfg.ClassifierThreshold, "the classifier probability threshold"},
		{"classifierurl", &cfg.ClassifierURL, "the inference service url"},
		{"classifiertimeout", &cfg.ClassifierTimeout, "the classifier call deadline"},
		{"strictfallback", &cfg.StrictFallback, "the strict classifier fallback flag"},
		{"outputdir", &cfg.OutputDir, "the report output directory"},
		{"dbendpoint", &cfg.DatabaseEndpoint, "the rqlite endpoint"},
		{"dbuser", &cfg.DatabaseUser, "the database user"},
		{"dbpass", &cfg.DatabasePass, "the database user pass"},
		{"interval", &cfg.Interval, "the scheduled re-run interval"},
		{"loglevel", &cfg.LogLevel, "the log level"},
	}
	for _, f := range flags {
		err = cfg.registerFlag(f.name, f.value, f.usage)
		if err != nil {
			return err
		}
	}

	// Parse command-line flags.
	flag.Parse()

	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Timeframe == "" {
		cfg.Timeframe = defaultTimeframe
	}

	return cfg.Validate()
}
