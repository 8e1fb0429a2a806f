package render

import (
	"fmt"
	"io"
)

// Slogan is shown on the welcome screen.
const Slogan = "Feel Better. Every cycle, every day."

// Welcome prints the onboarding banner for the given step.
func Welcome(w io.Writer, step int) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render("Avyna"), mutedStyle.Render(Slogan))
	if err != nil {
		return err
	}
	if step > 1 {
		_, err = fmt.Fprintf(w, "%s\n", mutedStyle.Render(fmt.Sprintf("Welcome back (step %d)", step)))
	}
	return err
}
