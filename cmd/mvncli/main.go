package main

import (
	"context"
	"fmt"
	"os"

	"mvncli/internal/cli"
)

var version = "0.1.0"

func main() {
	app := &cli.App{Version: version}
	err := cli.NewRootCmd(app).ExecuteContext(context.Background())
	if err != nil && !cli.Quiet(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.ExitCode(err))
}
