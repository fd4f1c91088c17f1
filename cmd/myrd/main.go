// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/tetu-io/myrd-contracts/api"
	"github.com/tetu-io/myrd-contracts/cmd/myrd/httpserver"
	"github.com/tetu-io/myrd-contracts/genesis"
	"github.com/tetu-io/myrd-contracts/log"
	"github.com/tetu-io/myrd-contracts/metrics"
	"github.com/tetu-io/myrd-contracts/runtime"
)

var (
	version   string
	gitCommit string
	gitTag    string
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
		Name:      "myrd",
		Usage:     "MYRD staking contracts node",
		Copyright: "2025 Tetu <https://tetu.io/>",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			memFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			enableAPILogsFlag,
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
	defer func() { log.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return err
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return errors.Wrap(err, "load genesis")
	}

	instanceDir := "memory"
	if !ctx.Bool(memFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
	}

	mainDB, err := openMainDB(ctx, instanceDir)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	stateDB, err := initState(gene, mainDB)
	if err != nil {
		return err
	}

	rt, err := runtime.New(stateDB, clockwork.NewRealClock())
	if err != nil {
		return err
	}

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		srv, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); srv.Close() }()
		metricsURL = srv.URL()
	}

	apiLogs := &atomic.Bool{}
	apiLogs.Store(ctx.Bool(enableAPILogsFlag.Name))

	adminURL := ""
	if ctx.Bool(enableAdminFlag.Name) {
		srv, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, apiLogs)
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping admin server..."); srv.Close() }()
		adminURL = srv.URL()
	}

	apiSrv, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		rt,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
		api.Options{
			AllowedOrigins:       ctx.String(apiCorsFlag.Name),
			EnableReqLogger:      apiLogs,
			SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
			Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
			EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		},
	)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); apiSrv.Close() }()

	printStartupMessage(gene, rt, instanceDir, apiSrv.URL(), metricsURL, adminURL)

	<-exitSignal.Done()
	return nil
}

func printStartupMessage(
	gene *genesis.Genesis,
	rt *runtime.Runtime,
	dataDir string,
	apiURL string,
	metricsURL string,
	adminURL string,
) {
	fmt.Printf(`Starting MYRD node
    Network      [ %v %v ]
    Period       [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]%v%v
`,
		gene.ID(), gene.Name(),
		rt.Epoch().Period(rt.Now()),
		dataDir,
		apiURL,
		func() string {
			if metricsURL == "" {
				return ""
			}
			return "\n    Metrics      [ " + metricsURL + " ]"
		}(),
		func() string {
			if adminURL == "" {
				return ""
			}
			return "\n    Admin        [ " + adminURL + " ]"
		}(),
	)
}
