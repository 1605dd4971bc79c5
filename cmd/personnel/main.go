// Package main runs a personnel simulation over fixture data.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	personnelcmd "github.com/louisbranch/personnel.dynamics/internal/cmd/personnel"
	entrypoint "github.com/louisbranch/personnel.dynamics/internal/platform/cmd"
	"github.com/louisbranch/personnel.dynamics/internal/platform/config"
)

func main() {
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServicePersonnel))
	cfg, err := personnelcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := personnelcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
