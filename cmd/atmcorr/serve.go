// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/jonas-eberle/gee-atmcorr-S2/atmosphere"
	"github.com/jonas-eberle/gee-atmcorr-S2/catalog"
	"github.com/jonas-eberle/gee-atmcorr-S2/correction"
	"github.com/jonas-eberle/gee-atmcorr-S2/metrics"
	"github.com/jonas-eberle/gee-atmcorr-S2/sceneindex"
	"github.com/jonas-eberle/gee-atmcorr-S2/sixs"
	"github.com/jonas-eberle/gee-atmcorr-S2/spectral"
	"github.com/jonas-eberle/gee-atmcorr-S2/terrain"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

func getPortStr() string {
	if port, ok := os.LookupEnv("PORT"); ok {
		return ":" + port
	}
	return ":8080"
}

func createPipeline(ctx util.LogContext) (*correction.Pipeline, error) {
	table, err := spectral.LoadTableFromFile(util.GetSpectralTablePath())
	if err != nil {
		return nil, err
	}

	resolver := &correction.Resolver{
		Catalog:    catalog.NewClient(),
		Terrain:    terrain.NewClient(),
		Atmosphere: atmosphere.NewClient(),
		Spectral:   table,
		LogContext: ctx,
	}

	return &correction.Pipeline{
		Resolver:    resolver,
		Solver:      sixs.NewHTTPSolver(),
		Concurrency: util.GetCorrectionConcurrency(),
		LogContext:  ctx,
	}, nil
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})

	pipeline, err := createPipeline(ctx)
	if err != nil {
		return nil, err
	}
	router.Handle("/coefficients", correction.NewCoefficientsHandler(pipeline))
	router.Handle("/metrics", metrics.Handler())

	// The local scene index is optional; without a database the service
	// still answers coefficient requests from the remote catalog.
	if localDiscoverHandler, err := sceneindex.NewDiscoverHandler(getDbConnectionFunc); err == nil {
		router.Handle("/localindex/discover", localDiscoverHandler)
	} else {
		util.LogAlert(ctx, "No database connection available, not mounting the local scene index: "+err.Error())
	}

	return router, nil
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	portStr := getPortStr()

	if router, err := createRouter(logContext); err == nil {
		launchServerFunc(portStr, router)
	} else {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
	}
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
