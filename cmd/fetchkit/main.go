// Command fetchkit sends HTTP requests through the fetchkit client.
package main

import (
	"context"
	"os"

	"github.com/kbukum/fetchkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
