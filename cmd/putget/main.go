package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"github.com/yourname/putget/pkg/transferclient"
)

const usage = `usage:
  putget [-timeout d] [-quiet] put <base-url> <local-file> <remote-path>
  putget [-timeout d] [-quiet] get <base-url> <remote-path> [local-file]
`

func main() {
	timeout := flag.Duration("timeout", 0, "overall request timeout (0 = none)")
	quiet := flag.Bool("quiet", false, "disable progress output")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	var opts []transferclient.Option
	if !*quiet {
		opts = append(opts, transferclient.WithProgress(os.Stderr))
	}
	c := transferclient.New(opts...)

	if err := run(ctx, c, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "putget:", err)
		var se *transferclient.StatusError
		if errors.As(err, &se) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, c transferclient.Client, args []string) error {
	if len(args) < 1 {
		flag.Usage()
		return errors.New("missing command")
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "put":
		if len(rest) != 3 {
			flag.Usage()
			return errors.New("put: wrong number of arguments")
		}
		return put(ctx, c, rest[0], rest[1], rest[2])
	case "get":
		if len(rest) != 2 && len(rest) != 3 {
			flag.Usage()
			return errors.New("get: wrong number of arguments")
		}
		local := path.Base(rest[1])
		if len(rest) == 3 {
			local = rest[2]
		}
		return get(ctx, c, rest[0], rest[1], local)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func put(ctx context.Context, c transferclient.Client, base, local, remote string) error {
	f, err := os.Open(local)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	start := time.Now()
	msg, err := c.Put(ctx, base, remote, f, info.Size())
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d bytes in %s)\n", msg, info.Size(), time.Since(start).Round(time.Millisecond))
	return nil
}

// get пишет во временный файл рядом с local и переименовывает его после полной загрузки.
func get(ctx context.Context, c transferclient.Client, base, remote, local string) error {
	rc, err := c.Get(ctx, base, remote)
	if err != nil {
		return err
	}
	defer rc.Close()

	if local == "-" {
		_, err = io.Copy(os.Stdout, rc)
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(local), ".putget-get-*")
	if err != nil {
		return err
	}
	if _, err = io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), local)
}
