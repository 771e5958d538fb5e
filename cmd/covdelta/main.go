package main

import (
	"fmt"
	"os"

	"github.com/zjy-dev/covdelta/cmd/covdelta/app"
)

func main() {
	if err := app.NewCovdeltaCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
