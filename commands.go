package main

import (
	"context"
	"net/http"
	"time"

	"github.com/jbeshir/moonbird-bankdata/controllers"
	"github.com/jbeshir/moonbird-bankdata/mlclient"
	"github.com/jbeshir/moonbird-bankdata/responders"
	"github.com/jbeshir/moonbird-bankdata/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

type services struct {
	evaluate *controllers.Evaluate
	index    *controllers.Index
	store    *store.SQLiteStore
}

func newServices(cfg *Config, cm mlclient.HttpClientMaker) (*services, error) {
	ps, err := store.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	cache, err := store.NewLRUCache(cfg.CacheSize)
	if err != nil {
		ps.Close()
		return nil, err
	}

	evaluate := &controllers.Evaluate{
		DatasetLoader: &FileDatasetLoader{
			Path:          cfg.DataFile,
			Schema:        cfg.Schema,
			TrainFraction: cfg.TrainFraction,
			Seed:          cfg.Seed,
		},
		TableStore: &mlclient.TableStore{
			HttpClientMaker: cm,
			Bucket:          cfg.Bucket,
		},
		Analyzer: &mlclient.Analyzer{
			HttpClientMaker: cm,
			PollLimiter:     rate.NewLimiter(rate.Every(cfg.PollInterval), 1),
			Project:         cfg.Project,
			Region:          cfg.Region,
			Bucket:          cfg.Bucket,
			Model:           cfg.Model,
			RuntimeVersion:  cfg.RuntimeVersion,
			PythonVersion:   cfg.PythonVersion,
			TrainerPackage:  cfg.TrainerPackage,
			TrainerModule:   cfg.TrainerModule,
		},
		PredictionMaker: &mlclient.PredictionMaker{
			CacheStorage:    cache,
			HttpClientMaker: cm,
			Project:         cfg.Project,
			Model:           cfg.Model,
			Count:           cfg.PredictionCount,
		},
		PersistentStore: ps,
		Schema:          cfg.Schema,
		Target:          cfg.Target,
		TableID:         cfg.TableID,
		AnalysisID:      cfg.AnalysisID,
		Thresholds:      cfg.Thresholds,
	}

	index := &controllers.Index{
		PersistentStore:   ps,
		DefaultThresholds: cfg.Thresholds,
	}

	return &services{evaluate: evaluate, index: index, store: ps}, nil
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Upload, analyze, predict and report once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(viper.GetViper())
			if err != nil {
				return err
			}

			s, err := newServices(cfg, &GoogleClientMaker{})
			if err != nil {
				return err
			}
			defer s.store.Close()

			text := &responders.TextResponder{W: cmd.OutOrStdout()}
			run, reports, err := s.evaluate.Run(cmd.Context(), time.Now(), text)
			if err != nil {
				return err
			}

			text.OnReports(run.Target, reports)
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve reports on the latest run and an evaluation task endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(viper.GetViper())
			if err != nil {
				return err
			}

			s, err := newServices(cfg, &GoogleClientMaker{})
			if err != nil {
				return err
			}
			defer s.store.Close()

			cm := &RequestContextMaker{}
			mux := http.NewServeMux()
			mux.HandleFunc("/", s.index.HandleFunc(cm, &responders.WebIndexResponder{}))
			mux.HandleFunc("/tasks/evaluate", s.evaluate.HandleFunc(cm, &responders.WebEvaluateResponder{
				ExposeErrors: cfg.ExposeErrors,
			}))

			return serve(cmd.Context(), ":"+cfg.Port, mux)
		},
	}
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
