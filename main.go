package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/impasto-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "impasto:", err)
		os.Exit(1)
	}
}
