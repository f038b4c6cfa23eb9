/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tomoncle/itemsvc"
	"github.com/tomoncle/itemsvc/api"
	"github.com/tomoncle/itemsvc/config"
	"github.com/tomoncle/itemsvc/database"
	"github.com/tomoncle/itemsvc/utils"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	configPath string
	port       int
	bind       string
	verbosity  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "itemsd",
		Short:        "itemsd - items CRUD service",
		Long:         `itemsd serves create, read, update, delete and list operations on items stored in a relational database.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file (or set ITEMSD_CONFIG env var)")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port, overrides the config file")
	rootCmd.Flags().StringVarP(&bind, "bind", "b", "", "IP address to bind to, overrides the config file")
	rootCmd.Flags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("itemsd %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(configPath, port, bind)
	if err != nil {
		return err
	}

	setupLogging(cfg.Log, verbosity)
	log := utils.NewLogger("MAIN")
	log.WithFields(logrus.Fields{
		"version":  version,
		"addr":     cfg.Server.Addr(),
		"database": cfg.Database.Type,
	}).Info("Starting itemsd")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager, err := database.InitDB(ctx, cfg.ConfigLoader())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}()

	gin.SetMode(cfg.Server.Mode)
	handler := api.NewHandler(itemsvc.NewItemService(manager), manager.HealthCheck)
	router, err := api.NewRouter(handler)
	if err != nil {
		return err
	}

	server := api.NewServer(router, api.ServerOptions{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("itemsd stopped")
	return nil
}

// resolveConfig loads the config file named by path or ITEMSD_CONFIG. Non-zero
// flag values win over the file and the environment.
func resolveConfig(path string, port int, bind string) (*config.Config, error) {
	if path == "" {
		path = utils.EnvDefaultString("ITEMSD_CONFIG", "")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if bind != "" {
		cfg.Server.Bind = bind
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogging(cfg config.LogConfig, verbosity int) {
	utils.ConfigureConsoleLogFormat(cfg.Format)
	level := cfg.Level
	switch {
	case verbosity == 1:
		level = "debug"
	case verbosity >= 2:
		level = "trace"
	}
	utils.ConfigureLogLevel(level)
}
