package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/vinser/pathbot/internal/flags"
	"github.com/vinser/pathbot/internal/sim"
)

func main() {
	f, err := flags.ParseSim(flags.NewFlagSetWithVisit(os.Args[0], flag.ExitOnError), os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	s, err := sim.New(f.Config)
	if err != nil {
		log.Fatal(err)
	}
	ln, err := net.Listen("tcp", f.Addr)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := sim.Run(ctx, ln, s); err != nil {
		log.Fatal(err)
	}
	log.Println("sim: stopped")
}
