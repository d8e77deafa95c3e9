package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/client/cli"
	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	global, cmd, rest, ok := cli.SplitCommand(os.Args[1:])
	if !ok {
		fmt.Fprintln(os.Stderr, cli.ErrUsage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(global)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	c, err := client.Dial(cfg.AuthServiceAddr, cfg.ProfileServiceAddr, cfg.Timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	if err := cli.NewApp(cfg, c, os.Stdin, os.Stdout).Run(ctx, cmd, rest); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		c.Close()
		os.Exit(1)
	}
}
