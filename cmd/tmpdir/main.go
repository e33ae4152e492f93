// Command tmpdir creates, cleans, and sweeps scratch directories.
package main

import "github.com/tmpdir-project/tmpdir/internal/cli"

func main() {
	cli.Execute()
}
