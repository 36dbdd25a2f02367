package daemon

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gclaussn/go-bpmn-extract/http/server"
)

// Run configures and starts the HTTP server of the extraction API.
// It blocks until an interrupt or termination signal is received and returns an exit code.
func Run(args []string) int {
	serverOptions := server.NewOptions()

	conf := newConf()
	conf.setServerOptions(serverOptions)

	flags := flag.NewFlagSet("bpmn-extractd", flag.ContinueOnError)
	flags.SetOutput(log.Writer())

	flags.Var(&conf.envFile.env, "env", "set environment variables")
	flags.Var(&conf.envFile, "env-file", "read in a file of environment variables")

	var doListConfOpts bool
	flags.BoolVar(&doListConfOpts, "list-conf-opts", false, "list configuration options")
	var doListConf bool
	flags.BoolVar(&doListConf, "list-conf", false, "list configuration")
	var doVersion bool
	flags.BoolVar(&doVersion, "version", false, "show version")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		} else {
			return 1
		}
	}

	if doListConfOpts {
		return listConfOpts(conf)
	}
	if doListConf {
		return listConf(conf)
	}
	if doVersion {
		return showVersion()
	}

	conf.getServerOptions(&serverOptions)

	if code := listConfErrors(conf); code != 0 {
		return code
	}

	s, err := server.New(func(o *server.Options) {
		*o = serverOptions
	})
	if err != nil {
		log.Printf("failed to create HTTP server: %v", err)
		return 1
	}

	s.ListenAndServe()

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, os.Interrupt, syscall.SIGTERM)

	<-signalC

	s.Shutdown()

	return 0
}
