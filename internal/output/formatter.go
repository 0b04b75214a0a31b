// Package output provides the JSON result envelope and error formatting
// shared by all commands.
package output

import (
	"fmt"
	"os"
)

// WriteError writes an error message to stderr.
func WriteError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
