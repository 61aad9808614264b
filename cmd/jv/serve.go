package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/rwjson/rvalue"
	"github.com/signadot/rwjson/server"
)

func (cfg *ServeConfig) loadOpt(_ *cli.Context, a string) (any, error) {
	if name, file, ok := strings.Cut(a, "="); !ok || name == "" || file == "" {
		return nil, fmt.Errorf("%w: argument %q expected name=file", cli.ErrUsage, a)
	}
	cfg.Load = append(cfg.Load, a)
	return a, nil
}

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}

	// Start gops agent for debugging
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
	}
	defer agent.Close()

	serverConfig := server.DefaultConfig()
	if cfg.ConfigFile != "" {
		serverConfig, err = server.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cfg.Addr != "" {
		serverConfig.Addr = cfg.Addr
	}
	if cfg.Strict {
		serverConfig.Strict = true
	}
	if err := serverConfig.Validate(); err != nil {
		return err
	}

	srv := server.New(&server.Spec{
		Config: serverConfig,
		Log:    theLog,
	})
	for _, l := range cfg.Load {
		name, file, _ := strings.Cut(l, "=")
		v, err := cfg.readFile(cc, file)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if _, _, err := srv.Store().Put(name, v.Own()); err != nil {
			return fmt.Errorf("error storing %s: %w", file, err)
		}
		theLog.Info("loaded document", "name", name, "file", file)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(serverConfig.Addr); err != nil {
		return fmt.Errorf("failed to start listener: %w", err)
	}
	fmt.Fprintf(cc.Out, "jv serve listening on %s\n", srv.Addr())

	<-ctx.Done()
	theLog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(sctx)
}
