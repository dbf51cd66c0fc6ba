// Command extract-nhmmer-tblout writes the sequences of significant nhmmer
// hits to stdout as FASTA.
package main

import (
	"nhmmerx/internal/app"
	"nhmmerx/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
