package main

import (
	"github.com/OFFIS-RIT/resumegraph/internal/server"
	"github.com/OFFIS-RIT/resumegraph/internal/util"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger"
	"github.com/OFFIS-RIT/resumegraph/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  debug,
		JSON:   util.GetEnvBool("LOG_JSON", false),
		Prefix: util.GetEnv("LOG_PREFIX"),
	})
	logger.Init(consoleLogger)

	server.Init()
}
