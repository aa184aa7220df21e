// Package main is the entry point for the mixtape application.
package main

import (
	"github.com/mixtape-cli/mixtape/cmd"
	"github.com/mixtape-cli/mixtape/config"
	"github.com/mixtape-cli/mixtape/internal/cache"
	"github.com/mixtape-cli/mixtape/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Initialize asynchronous background cache maintenance.
	go cache.CollectGarbage()

	cmd.Execute()
}
