// Command gsinsight is the GeneSet-Insight command line interface.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ontomix/GeneSet-Insight/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	// A local .env file is a development convenience; absence is the normal
	// case and not an error.
	_ = godotenv.Load()

	err := cli.Execute()
	os.Exit(cli.ExitCode(err))
}
