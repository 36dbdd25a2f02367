/*
bpmn-extractd is a daemon, serving the BPMN extraction via HTTP.

Usage:

	-env value
		set environment variables
	-env-file value
		read in a file of environment variables
	-list-conf
		list configuration
	-list-conf-opts
		list configuration options
	-version
		show version
*/
package main

import (
	"log"
	"os"

	"github.com/gclaussn/go-bpmn-extract/daemon"
)

func main() {
	log.SetOutput(os.Stdout)

	code := daemon.Run(os.Args[1:])
	os.Exit(code)
}
