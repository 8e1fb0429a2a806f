package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/avyna/pkg/core"
	"github.com/aretw0/avyna/pkg/validate"
)

func main() {
	Execute()
}

func fatal(msg string, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		fmt.Fprintf(os.Stderr, "%s:\n", msg)
		for _, fe := range verrs {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Message)
		}
	case errors.Is(err, core.ErrNoCredential):
		fmt.Fprintf(os.Stderr, "%s: not logged in (run `avyna login`)\n", msg)
	default:
		fmt.Fprintf(os.Stderr, "%s: %s\n", msg, core.UserMessage(err))
	}
	os.Exit(1)
}
