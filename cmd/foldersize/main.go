// Command foldersize reports the size of every entry in a directory, largest first.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/foldersize/internal/cli"
)

// version is set at build time.
//
//nolint:gochecknoglobals // Set via ldflags
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
