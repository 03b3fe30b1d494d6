package main

import (
	"os"
)

func main() {
	c := newCLI(os.Stdout, os.Stderr)
	err := c.rootCmd().Execute()
	c.close()
	if err != nil {
		os.Exit(1)
	}
}
