package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
)

type cli struct {
	Build   buildCmd `cmd:"" default:"withargs" help:"convert an opcode listing into a raw binary file (default command)"`
	Dump    dumpCmd  `cmd:"" help:"write the opcode listing of a binary file"`
	Verbose int      `name:"verbose" short:"v" type:"counter" help:"log more, repeat for debug output"`
}

type buildCmd struct {
	Source      string        `arg:"" name:"source" help:"opcode listing, \"-\" for standard input"`
	Destination string        `arg:"" optional:"" name:"destination" help:"binary file to write, \"-\" for standard output. defaults to the source path without its extension"`
	Check       bool          `name:"check" short:"c" help:"validate the listing only, write nothing"`
	Watch       bool          `name:"watch" short:"w" help:"keep running and rebuild whenever the source changes"`
	Interval    time.Duration `name:"rebuild-interval" default:"200ms" help:"minimum time between two rebuilds in watch mode"`
}

type dumpCmd struct {
	Binary    string  `arg:"" name:"binary" help:"binary file, \"-\" for standard input"`
	Listing   string  `arg:"" optional:"" name:"listing" default:"-" help:"listing file to write, \"-\" for standard output"`
	Width     int     `name:"width" short:"n" default:"2" help:"bytes per line"`
	Origin    address `name:"origin" default:"0x200" help:"address of the first byte, shown in line comments"`
	NoAddress bool    `name:"no-address" help:"omit the address comments"`
}

// address accepts decimal, 0x hex and 0o octal values
type address uint

func (a *address) Decode(ctx *kong.DecodeContext) error {
	token, err := ctx.Scan.PopValue("address")
	if err != nil {
		return err
	}

	v, err := strconv.ParseUint(fmt.Sprint(token.Value), 0, 32)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", token.Value, err)
	}

	*a = address(v)
	return nil
}

type runEnv struct {
	ctx context.Context
	std stdio
}

func (c *buildCmd) Run(env *runEnv) error {
	ctx := env.ctx

	if c.Check {
		n, err := Check(ctx, c.Source, env.std)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.std.out, "%s: ok, %d bytes\n", c.Source, n)
		return nil
	}

	dst, err := resolveDestination(c.Source, c.Destination)
	if err != nil {
		return err
	}

	if c.Watch {
		if c.Source == stdStream {
			return usageErrorf("cannot watch standard input")
		}
		return Watch(ctx, c.Source, dst, c.Interval, env.std)
	}

	_, err = Convert(ctx, c.Source, dst, env.std)
	return err
}

func (c *dumpCmd) Run(env *runEnv) error {
	opts := dumpOptions{
		Width:   c.Width,
		Origin:  uint(c.Origin),
		Address: !c.NoAddress,
	}

	_, err := Dump(env.ctx, c.Binary, c.Listing, opts, env.std)
	return err
}

// run executes the command line args and returns the process exit status:
// 0 on success, 1 on conversion or I/O failure, 2 on misuse.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var c cli
	parser, err := kong.New(&c,
		kong.Name("tobin"),
		kong.Description("Convert hex opcode listings into raw binary files."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintf(stderr, "tobin: %v\n", err)
		return 2
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "tobin: %v\n", err)
		return 2
	}

	setOutput(stderr, levelOf(c.Verbose))

	err = kctx.Run(&runEnv{ctx: ctx, std: stdio{in: stdin, out: stdout}})
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "tobin: %v\n", err)
	if errors.Is(err, ErrUsage) {
		return 2
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
