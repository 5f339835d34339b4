// Package main is the entry point for the somnoset CLI.
package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/stafne/somno/cmd/somnoset/commands"
	somnoerrors "github.com/stafne/somno/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)

		var exitErr *somnoerrors.ExitError
		if stderrors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintln(os.Stderr, "Suggestion:", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		os.Exit(somnoerrors.ExitUser)
	}
}
