package main

import (
	"github.com/tos-analyser/backend/internal/server"
	"github.com/tos-analyser/backend/internal/util"
	"github.com/tos-analyser/backend/pkg/logger"
	"github.com/tos-analyser/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
