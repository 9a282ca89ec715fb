package main

import (
	"fmt"
	"os"

	"github.com/wzhd/rotor/pkg/style"
)

func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.FailedStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
