/*
bpmn-extract is a CLI for extracting a structured description from BPMN 2.0 XML, either locally or via HTTP.

Usage:

	bpmn-extract [flags]
	bpmn-extract [command]

Available Commands:

	completion  Generate the autocompletion script for the specified shell
	extract     Extract elements, flows and the flow order of a BPMN process
	help        Help about any command
	version     Show version

Flags:

	    --debug             Log HTTP requests and responses
	-h, --help              help for bpmn-extract
	    --max-depth int     Maximum nesting depth of a local extraction - 0 means default
	    --timeout duration  Time limit for requests made by the HTTP client (default 40s)
	    --url string        HTTP server URL - when empty, BPMN XML is extracted locally

Use "bpmn-extract [command] --help" for more information about a command.
*/
package main

import (
	"os"

	"github.com/gclaussn/go-bpmn-extract/cli"
)

var (
	version = "unknown-version"
)

func main() {
	cli := cli.New(version)
	os.Exit(cli.Execute())
}
