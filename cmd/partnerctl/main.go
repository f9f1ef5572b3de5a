// Command partnerctl is a command-line client for the DailyEvent Partner API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dailyevent/partner-go/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], cli.DefaultEnv())
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, env *cli.Env) int {
	root := cli.NewRootCmd(env, version)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		cli.PrintError(env.Stderr, err)
		return 1
	}
	return 0
}
