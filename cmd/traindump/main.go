// traindump - Train detector memory dump reader
//
// traindump reads the text memory dump of a train detector and reports each
// recorded event relative to a start date.
package main

import (
	"os"

	"traindump/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
