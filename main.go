package main

import (
	"github.com/joho/godotenv"

	"github.com/theirongolddev/bburn/cmd"
)

func main() {
	// A .env in the working directory may set BBURN_DB and XDG paths.
	_ = godotenv.Load()
	cmd.Execute()
}
