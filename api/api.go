// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/fuelcell/generator/api/blocks"
	"github.com/fuelcell/generator/api/doc"
	"github.com/fuelcell/generator/api/energy"
	"github.com/fuelcell/generator/api/fuel"
	"github.com/fuelcell/generator/api/generator"
	"github.com/fuelcell/generator/api/logs"
	"github.com/fuelcell/generator/api/middleware"
	"github.com/fuelcell/generator/chain"
	"github.com/fuelcell/generator/log"
	"github.com/fuelcell/generator/logdb"
	"github.com/fuelcell/generator/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
	LogsLimit            uint64
	SkipLogs             bool
}

// New return api router
func New(
	repo *chain.Repository,
	exec *runtime.Executor,
	logDB *logdb.LogDB,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	router.PathPrefix("/doc").Handler(
		http.StripPrefix("/doc/", http.FileServer(http.FS(doc.FS))),
	)
	router.Path("/").HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "doc/generator.yaml", http.StatusTemporaryRedirect)
		})

	blocks.New(repo, exec).
		Mount(router, "/blocks")
	generator.New(exec).
		Mount(router, "/generator")
	fuel.New(exec).
		Mount(router, "/fuel")
	energy.New(exec).
		Mount(router, "/energy")
	if !opts.SkipLogs {
		logs.New(logDB, opts.LogsLimit).
			Mount(router, "/logs")
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"content-type", "x-genesis-id"}),
		handlers.ExposedHeaders([]string{"x-genesis-id", "x-generator-ver"}),
	)(handler)
	handler = versionHandler(handler, repo.GenesisBlock().ID().String())

	if opts.EnableReqLogger != nil {
		handler = middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.SlowQueriesThreshold, opts.Log5xxErrors)(handler)
	}

	return handler.ServeHTTP
}

func versionHandler(h http.Handler, genesisID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-generator-ver", doc.Version())
		w.Header().Set("x-genesis-id", genesisID)
		h.ServeHTTP(w, r)
	})
}
