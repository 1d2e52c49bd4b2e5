package main

import (
	"github.com/joho/godotenv"

	"github.com/tgreenwood/leaguetables/internal/cli"
)

func main() {
	// A missing .env file is the normal case; flags and real environment
	// variables still apply.
	_ = godotenv.Load()

	cli.Execute()
}
