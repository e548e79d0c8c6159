// main is the entry point for the reviewlens CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/reviewlens/cmd"
	"github.com/huangsam/reviewlens/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()
	iocache.CloseCaching()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
