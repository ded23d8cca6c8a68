// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/fuelcell/generator/api"
	"github.com/fuelcell/generator/api/admin/health"
	"github.com/fuelcell/generator/cmd/generator/httpserver"
	"github.com/fuelcell/generator/cmd/generator/solo"
	"github.com/fuelcell/generator/kv"
	"github.com/fuelcell/generator/log"
	"github.com/fuelcell/generator/logdb"
	"github.com/fuelcell/generator/lvldb"
	"github.com/fuelcell/generator/metrics"
	"github.com/fuelcell/generator/runtime"
	"github.com/fuelcell/generator/state"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Generator",
		Usage:     "Fuel cell energy generator on a single node chain",
		Copyright: "2018 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			dataDirFlag,
			persistFlag,
			cacheFlag,
			genesisFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			skipLogsFlag,
			blockIntervalFlag,
			onDemandFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			enableAdminFlag,
			adminAddrFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	logLevel := initLogger(lvl, ctx.Bool(jsonLogsFlag.Name))

	blockInterval := ctx.Uint64(blockIntervalFlag.Name)
	if blockInterval == 0 {
		return errors.New("block-interval cannot be zero")
	}
	onDemand := ctx.Bool(onDemandFlag.Name)
	skipLogs := ctx.Bool(skipLogsFlag.Name)

	gene, err := loadGenesis(ctx)
	if err != nil {
		return err
	}

	var (
		store       kv.StoreCloser
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx.String(dataDirFlag.Name), gene); err != nil {
			return err
		}
		if store, err = openMainDB(instanceDir, ctx.Int(cacheFlag.Name)); err != nil {
			return err
		}
		if logDB, err = openLogDB(instanceDir); err != nil {
			store.Close()
			return err
		}
	} else {
		instanceDir = "Memory"
		if store, err = lvldb.NewMem(); err != nil {
			return err
		}
		if logDB, err = logdb.NewMem(); err != nil {
			store.Close()
			return err
		}
	}
	defer func() { logger.Info("closing main database..."); store.Close() }()
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	repo, err := gene.Setup(store)
	if err != nil {
		return errors.Wrap(err, "setup genesis")
	}

	execOpts := runtime.Options{OnDemand: onDemand}
	if !skipLogs {
		execOpts.LogDB = logDB
	}
	exec, err := runtime.New(repo, state.NewStater(store), execOpts)
	if err != nil {
		return errors.Wrap(err, "create executor")
	}

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		logger.Info("metrics server listening", "url", url)
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	if ctx.Bool(enableAdminFlag.Name) {
		h := health.New(repo, time.Duration(blockInterval)*time.Second, onDemand)
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, apiLogs, h)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		defer func() { logger.Info("stopping admin server..."); closeFunc() }()
		logger.Info("admin server listening", "url", url)
	}

	apiHandler := api.New(
		repo,
		exec,
		logDB,
		api.Options{
			AllowedOrigins:       ctx.String(apiCorsFlag.Name),
			EnableMetrics:        enableMetrics,
			EnableReqLogger:      apiLogs,
			SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
			Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
			LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
			SkipLogs:             skipLogs,
		},
	)

	apiURL, srvCloser, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		apiHandler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return errors.Wrap(err, "start API server")
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	printStartupMessage(gene, repo, instanceDir, apiURL, onDemand, !ctx.IsSet(genesisFlag.Name))

	return solo.New(exec, solo.Options{
		OnDemand:      onDemand,
		BlockInterval: blockInterval,
	}).Run(exitSignal)
}
