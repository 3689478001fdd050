package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/samvad-hq/placeholder-client/internal/app"
	"github.com/samvad-hq/placeholder-client/internal/config"
	"github.com/samvad-hq/placeholder-client/internal/logger"
)

type cli struct {
	BaseURL  string `help:"API base URL (overrides BASE_URL)." name:"base-url"`
	LogLevel string `help:"Log level: debug, info, warn, error (overrides LOG_LEVEL)." name:"log-level"`

	Show   showCmd   `cmd:"" default:"1" help:"Print the first post and the first user."`
	Posts  postsCmd  `cmd:"" help:"Print posts."`
	Users  usersCmd  `cmd:"" help:"Print users."`
	Export exportCmd `cmd:"" help:"Publish unseen posts and users to the configured publishers."`
}

// runtime is bound into every command's Run method.
type runtime struct {
	ctx context.Context
	app *app.App
	out io.Writer
}

type showCmd struct{}

func (showCmd) Run(rt *runtime) error {
	return rt.app.Show(rt.ctx, rt.out)
}

type postsCmd struct {
	Limit int `help:"Maximum number of posts to print (0 prints all)." default:"0"`
}

func (c postsCmd) Run(rt *runtime) error {
	return rt.app.ListPosts(rt.ctx, rt.out, c.Limit)
}

type usersCmd struct {
	Limit int `help:"Maximum number of users to print (0 prints all)." default:"0"`
}

func (c usersCmd) Run(rt *runtime) error {
	return rt.app.ListUsers(rt.ctx, rt.out, c.Limit)
}

type exportCmd struct{}

func (exportCmd) Run(rt *runtime) error {
	results, err := rt.app.Export(rt.ctx)
	for _, res := range results {
		fmt.Fprintf(rt.out, "%s: published=%d skipped=%d failed=%d\n",
			res.Collection, res.Published, res.Skipped, res.Failed)
	}
	return err
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and maps a failure to exit code 1.
func execute(args []string, stdout, stderr io.Writer) int {
	if err := run(args, stdout); err != nil {
		fmt.Fprintf(stderr, "placeholder failed: %v\n", err)
		return 1
	}
	return 0
}

func run(args []string, stdout io.Writer) error {
	var opts cli
	parser, err := kong.New(&opts,
		kong.Name("placeholder"),
		kong.Description("Fetch posts and users from a JSONPlaceholder-compatible API."),
		kong.UsageOnError(),
	)
	if err != nil {
		return fmt.Errorf("init cli: %w", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Override(opts.BaseURL, opts.LogLevel); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	sugar, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()
	log := logger.NewZapLogger(sugar)

	logger.DebugObj("placeholder starting", "config", cfg.LogFields())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize app", "error", err)
		return err
	}
	defer a.Close()

	return kctx.Run(&runtime{ctx: ctx, app: a, out: stdout})
}
