package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/oms-project/omsctl/cmd/omsctl/cmd"
	"github.com/oms-project/omsctl/internal/common/logging"
)

func main() {
	logging.ConfigureCommandLineLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.RootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
