package main

import (
	"os"

	"github.com/sumitmahankale/ShabdSetu/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
