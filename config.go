package main

import (
	"os"
	"strings"
	"time"

	"github.com/jbeshir/moonbird-bankdata/controllers"
	"github.com/jbeshir/moonbird-bankdata/data"
	"github.com/jbeshir/moonbird-bankdata/dataset"
	"github.com/jbeshir/moonbird-bankdata/mlclient"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer("-", "_")

type Config struct {
	Project        string
	Region         string
	Bucket         string
	Model          string
	RuntimeVersion string
	PythonVersion  string
	TrainerPackage string
	TrainerModule  string
	PollInterval   time.Duration

	DataFile        string
	Schema          data.Schema
	Target          string
	TableID         string
	AnalysisID      string
	TrainFraction   float64
	PredictionCount int
	Thresholds      []float64
	Seed            int64

	DBPath       string
	CacheSize    int
	Port         string
	ExposeErrors bool
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("project", "", "Google Cloud project")
	flags.String("region", "us-central1", "region to run training jobs in")
	flags.String("bucket", "", "Cloud Storage bucket for tables and analyses")
	flags.String("model", "bankdata", "ML Engine model that analyses are deployed as versions of")
	flags.String("runtime-version", "1.15", "ML Engine runtime version")
	flags.String("python-version", "3.7", "ML Engine Python version")
	flags.String("trainer-package", "", "gs:// URI of the trainer package")
	flags.String("trainer-module", "trainer.task", "Python module to run for training")
	flags.Duration("poll-interval", 10*time.Second, "interval between analysis status checks")

	flags.String("data-file", "bank-data.csv", "CSV dataset to evaluate on")
	flags.String("schema-file", "", "YAML schema for the dataset (default: bank data schema)")
	flags.String("target", "pep", "column to predict")
	flags.String("table-id", "bank-data-example", "table to upload training rows to")
	flags.String("analysis-id", "main-analysis", "analysis to train")
	flags.Float64("train-fraction", 0.8, "fraction of rows used for training")
	flags.Int("prediction-count", mlclient.DefaultPredictionCount, "samples drawn for each prediction")
	flags.String("thresholds", "0.5,0.4,0.3", "comma-separated maximum uncertainty thresholds")
	flags.Int64("seed", 0, "seed for splitting rows (default: time based)")

	flags.String("db-path", "bankdata.db", "SQLite database storing evaluation runs")
	flags.Int("cache-size", 10000, "number of predictions to cache in memory")
	flags.String("port", "8080", "port to serve on")
	flags.Bool("expose-errors", false, "include error details in HTTP responses")
}

func loadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Project:        v.GetString("project"),
		Region:         v.GetString("region"),
		Bucket:         v.GetString("bucket"),
		Model:          v.GetString("model"),
		RuntimeVersion: v.GetString("runtime-version"),
		PythonVersion:  v.GetString("python-version"),
		TrainerPackage: v.GetString("trainer-package"),
		TrainerModule:  v.GetString("trainer-module"),
		PollInterval:   v.GetDuration("poll-interval"),

		DataFile:        v.GetString("data-file"),
		Target:          v.GetString("target"),
		TableID:         v.GetString("table-id"),
		AnalysisID:      v.GetString("analysis-id"),
		TrainFraction:   v.GetFloat64("train-fraction"),
		PredictionCount: v.GetInt("prediction-count"),
		Seed:            v.GetInt64("seed"),

		DBPath:       v.GetString("db-path"),
		CacheSize:    v.GetInt("cache-size"),
		Port:         v.GetString("port"),
		ExposeErrors: v.GetBool("expose-errors"),
	}

	thresholds, err := controllers.ParseThresholds(strings.Join(v.GetStringSlice("thresholds"), ","))
	if err != nil {
		return nil, err
	}
	if len(thresholds) == 0 {
		return nil, errors.New("at least one threshold is required")
	}
	cfg.Thresholds = thresholds

	cfg.Schema = dataset.BankSchema()
	if schemaFile := v.GetString("schema-file"); schemaFile != "" {
		f, err := os.Open(schemaFile)
		if err != nil {
			return nil, errors.Wrap(err, "couldn't open schema file")
		}
		defer f.Close()

		cfg.Schema, err = dataset.LoadSchema(f)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	required := map[string]string{
		"project":         cfg.Project,
		"bucket":          cfg.Bucket,
		"model":           cfg.Model,
		"trainer-package": cfg.TrainerPackage,
		"table-id":        cfg.TableID,
		"analysis-id":     cfg.AnalysisID,
	}
	for name, value := range required {
		if value == "" {
			return errors.Errorf("%s must be set", name)
		}
	}

	if _, ok := cfg.Schema[cfg.Target]; !ok {
		return errors.Errorf("target %s is not a column of the schema", cfg.Target)
	}
	if !(cfg.TrainFraction > 0 && cfg.TrainFraction < 1) {
		return errors.Errorf("train-fraction must be between 0 and 1, was %g", cfg.TrainFraction)
	}
	if cfg.PollInterval <= 0 {
		return errors.New("poll-interval must be positive")
	}
	if cfg.CacheSize <= 0 {
		return errors.New("cache-size must be positive")
	}
	return nil
}
