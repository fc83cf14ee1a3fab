// Package main is the entry point for the classtrack console.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/tharindu/classtrack/internal/cli"
)

func main() {
	_ = godotenv.Load()
	os.Exit(cli.Execute())
}
