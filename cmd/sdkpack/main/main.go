package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/sdkpack/cmd/sdkpack"
	"github.com/arthur-debert/sdkpack/pkg/ui/styles"
)

func main() {
	rootCmd := sdkpack.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if sdkpack.IsReported(err) {
			os.Exit(1)
		}
		// Flag and argument errors never reach a renderer
		errorStyle := styles.GetStyle(styles.Error)
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
