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
	cli "gopkg.in/urfave/cli.v1"
)

var commands = cli.Commands{
	cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Launch the atmospheric correction webserver",
		Action:  serveAction,
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the atmcorr CLI",
		Action:  versionAction,
	},
	cli.Command{
		Name:    "scene_ingest",
		Aliases: []string{"i"},
		Usage:   "Update the local scene index from a scene list export",
		Action:  sceneIngestAction,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "url",
				Usage: "URL of the scene list export",
			},
			cli.BoolFlag{
				Name:  "gzip",
				Usage: "Treat the scene list export as gzip-compressed",
			},
		},
	},
	cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Update database schema",
		Action:  migrateDatabaseAction,
	},
}

func createCliApp() (app *cli.App) {
	app = cli.NewApp()
	app.Name = "atmcorr"
	app.Usage = "Launch a gee-atmcorr-S2 process"
	app.Commands = commands
	return
}
