package main

import (
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mshaverdo/daikon/controller/respserver"
	"github.com/mshaverdo/daikon/core"
	"github.com/mshaverdo/daikon/log"
)

const defaultPort = 6379

func main() {
	var (
		quiet, verbose, veryVerbose bool
	)

	flag.BoolVar(&verbose, "v", false, "Enable verbose logging.")
	flag.BoolVar(&quiet, "q", false, "Quiet logging. Totally silent.")
	flag.BoolVar(&veryVerbose, "vv", false, "Enable very verbose logging.")
	flag.Parse()

	switch {
	case veryVerbose:
		log.SetLevel(log.DEBUG)
	case verbose:
		log.SetLevel(log.INFO)
	case quiet:
		log.SetLevel(-1)
	default:
		log.SetLevel(log.NOTICE)
	}

	port := defaultPort
	if flag.NArg() > 0 {
		var err error
		if port, err = strconv.Atoi(flag.Arg(0)); err != nil {
			log.Critical("invalid port %q", flag.Arg(0))
			os.Exit(2)
		}
	}

	server := respserver.New("127.0.0.1", port, core.New(core.NewStorageHash()))

	go handleSignals(server)

	if err := server.ListenAndServe(); err != nil {
		log.Critical(err.Error())
		os.Exit(1)
	}
}

func handleSignals(server *respserver.RespServer) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	for {
		s := <-sigs
		switch s {
		case syscall.SIGINT, syscall.SIGTERM:
			server.Shutdown()
			return
		}
	}
}
