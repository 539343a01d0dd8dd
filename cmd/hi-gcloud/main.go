package main

import (
	"os"

	"github.com/su-record/hi-gcloud/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
