package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/sdkpack/cmd/sdkpack"
	"github.com/arthur-debert/sdkpack/internal/version"
)

func main() {
	rootCmd := sdkpack.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SDKPACK",
		Section: "1",
		Source:  "sdkpack " + version.Version,
		Manual:  "sdkpack manual",
	}

	if len(os.Args) > 1 {
		// Write one page per command into the given directory
		if err := doc.GenManTree(rootCmd, header, os.Args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
