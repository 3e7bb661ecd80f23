// Command xivquote prints a random line of Final Fantasy XIV lore.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/justadataconstruct/xivquote/internal/cli"
	"github.com/justadataconstruct/xivquote/pkg/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

// run executes the root command and returns the process exit status.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return exitCode(root.ExecuteContext(ctx), stderr)
}

// exitCode reports err on stderr and maps it to an exit status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
