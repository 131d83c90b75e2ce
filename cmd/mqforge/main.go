package main

import (
	"os"

	"github.com/mqforge/mqforge/cmd/mqforge/commands"
)

var (
	VERSION = "dev"
)

// @title MQForge API
// @version 1.0
// @description Declarative lifecycle management for messaging-system resources
// @host localhost:8080
// @BasePath /api/
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := commands.Execute(VERSION); err != nil {
		os.Exit(1)
	}
}
