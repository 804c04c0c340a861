// Command tzbucket buckets timestamps into DST-correct local calendar ranges
package main

import (
	"os"

	// embed zone data so bucketing never depends on the host tzdata install
	_ "time/tzdata"

	"tzbucket/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
