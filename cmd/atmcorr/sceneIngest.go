package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/jonas-eberle/gee-atmcorr-S2/sceneindex"
	"github.com/jonas-eberle/gee-atmcorr-S2/util"
)

func sceneIngestAction(c *cli.Context) {
	logContext := &util.BasicLogContext{}

	sceneListURL := c.String("url")
	if sceneListURL == "" {
		util.LogAlert(logContext, "No scene list URL given; use --url")
		return
	}

	imported, skipped, err := sceneindex.ImportSceneList(logContext, getDbConnectionFunc, sceneListURL, c.Bool("gzip"))
	if err != nil {
		util.LogSimpleErr(logContext, "Scene list import failed: ", err)
		return
	}
	util.LogInfo(logContext, fmt.Sprintf("Scene list import complete: %d imported, %d skipped", imported, skipped))
}
