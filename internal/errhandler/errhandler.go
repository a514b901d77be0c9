package errhandler

import (
	"os"
	"strings"
	"unicode"

	"github.com/pterm/pterm"
)

// HandleError prints a command failure and exits. Interrupts are treated
// as a cancelled operation rather than an error.
func HandleError(err error) {
	if strings.Contains(err.Error(), "interrupt") {
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	}

	pterm.Error.Println(capitalize(err.Error()))
	os.Exit(1)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
