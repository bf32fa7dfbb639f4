package main

import (
	_ "github.com/joho/godotenv/autoload"

	"analytics-gateway/cmd"
)

func main() {
	cmd.Execute()
}
