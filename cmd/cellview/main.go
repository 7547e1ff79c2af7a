// Cellview is a terminal browser for a database of text rows. It shows the
// rows page by page with keyboard navigation and selection, and can also
// import rows, print a page of them, or serve them to other cellview
// instances over JSON-RPC.
package main

import (
	"os"

	"src.cellview.dev/pkg/browse"
	"src.cellview.dev/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(browse.Programs()...)))
}
