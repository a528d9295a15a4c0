// cmd/advisor/main.go
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err.Error()))
		os.Exit(1)
	}
}
