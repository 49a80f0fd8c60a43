// Command passhash creates, verifies and inspects password hashes.
//
//	passhash make secret
//	passhash --algorithm bcrypt --cost 10 make secret
//	passhash verify secret '$argon2id$v=19$...'
//	passhash needs-rehash '$2y$10$...'
//	passhash info '$2y$12$...'
//	passhash supported
//
// Settings come from flags, PASSHASH_* environment variables (a .env file
// in the working directory is loaded first) and an optional config file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hasbyte1/go-hashing/hashing"
	"github.com/hasbyte1/go-hashing/internal/config"
	"github.com/hasbyte1/go-hashing/internal/logger"
	"github.com/hasbyte1/go-hashing/metrics"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("passhash", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.StringP("algorithm", "a", "", "algorithm: bcrypt, argon2i or argon2id")
	fs.IntP("cost", "c", 0, "bcrypt cost")
	fs.Int("time-cost", 0, "argon2 iterations")
	fs.Int("memory-cost", 0, "argon2 memory in KiB")
	fs.Int("threads", 0, "argon2 parallelism")
	fs.Duration("timeout", 0, "give up waiting after this long (0 waits forever)")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	asJSON := fs.Bool("json", false, "parse data arguments as JSON values")
	withMetrics := fs.Bool("metrics", false, "print operation metrics to stderr on exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: passhash [flags] <make|verify|needs-rehash|info|supported> [args]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "passhash: %v\n", err)
		return exitFail
	}
	log, err := logger.New(stderr, cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "passhash: %v\n", err)
		return exitFail
	}
	defer func() { _ = log.Sync() }()

	alg, opts, err := cfg.Options()
	if err != nil {
		fmt.Fprintf(stderr, "passhash: %v\n", err)
		return exitUsage
	}

	hopts := []hashing.Option{hashing.WithLogger(log)}
	if *withMetrics {
		registry := prometheus.NewRegistry()
		m, err := metrics.New(metrics.Options{Registerer: registry})
		if err != nil {
			fmt.Fprintf(stderr, "passhash: %v\n", err)
			return exitFail
		}
		hopts = append(hopts, hashing.WithObserver(m))
		defer dumpMetrics(registry, stderr, log)
	}

	c := &cli{
		h:       hashing.New(string(alg), hopts...),
		opts:    opts,
		json:    *asJSON,
		timeout: cfg.Timeout,
		log:     log,
		out:     stdout,
	}
	code, err := c.dispatch(ctx, rest[0], rest[1:])
	if err != nil {
		fmt.Fprintf(stderr, "passhash: %v\n", err)
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
	}
	return code
}

type cli struct {
	h       *hashing.Hash
	opts    hashing.Options
	json    bool
	timeout time.Duration
	log     *zap.Logger
	out     io.Writer
}

func (c *cli) dispatch(ctx context.Context, cmd string, args []string) (int, error) {
	switch cmd {
	case "make":
		if len(args) != 1 {
			return exitUsage, fmt.Errorf("%w: make <data>", errUsage)
		}
		data, err := c.decode(args[0])
		if err != nil {
			return exitUsage, err
		}
		hash, err := bounded(ctx, c.timeout, func() (string, error) {
			return c.h.MakeHash(data, c.opts)
		})
		if err != nil {
			return c.fail(cmd, err)
		}
		fmt.Fprintln(c.out, hash)
		return exitOK, nil

	case "verify":
		if len(args) != 2 {
			return exitUsage, fmt.Errorf("%w: verify <data> <hash>", errUsage)
		}
		data, err := c.decode(args[0])
		if err != nil {
			return exitUsage, err
		}
		ok, err := bounded(ctx, c.timeout, func() (bool, error) {
			return c.h.VerifyHash(data, args[1])
		})
		if err != nil {
			return c.fail(cmd, err)
		}
		fmt.Fprintln(c.out, ok)
		if !ok {
			return exitFail, nil
		}
		return exitOK, nil

	case "needs-rehash":
		if len(args) != 1 {
			return exitUsage, fmt.Errorf("%w: needs-rehash <hash>", errUsage)
		}
		needs, err := bounded(ctx, c.timeout, func() (bool, error) {
			return c.h.NeedsRehash(args[0], c.opts)
		})
		if err != nil {
			return c.fail(cmd, err)
		}
		fmt.Fprintln(c.out, needs)
		return exitOK, nil

	case "info":
		if len(args) != 1 {
			return exitUsage, fmt.Errorf("%w: info <hash>", errUsage)
		}
		info := c.h.HashInfo(args[0])
		enc := json.NewEncoder(c.out)
		err := enc.Encode(struct {
			Algorithm string          `json:"algorithm"`
			Options   hashing.Options `json:"options"`
		}{info.Name(), info.Options})
		if err != nil {
			return exitFail, err
		}
		return exitOK, nil

	case "supported":
		if len(args) != 0 {
			return exitUsage, fmt.Errorf("%w: supported takes no arguments", errUsage)
		}
		for _, a := range c.h.Supported() {
			fmt.Fprintln(c.out, a)
		}
		return exitOK, nil
	}
	return exitUsage, fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func (c *cli) fail(cmd string, err error) (int, error) {
	c.log.Debug("command failed", zap.String("command", cmd), zap.Error(err))
	return exitFail, err
}

// decode returns arg unchanged, or its JSON value when --json is set.
func (c *cli) decode(arg string) (any, error) {
	if !c.json {
		return arg, nil
	}
	dec := json.NewDecoder(strings.NewReader(arg))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON data: %v", errUsage, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON value", errUsage)
	}
	return v, nil
}

// bounded runs fn and waits at most timeout for it.  Hashing cannot be
// interrupted, so on expiry fn keeps running on its goroutine and its
// result is dropped.
func bounded[T any](ctx context.Context, timeout time.Duration, fn func() (T, error)) (T, error) {
	if timeout <= 0 {
		return fn()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("gave up waiting: %w", ctx.Err())
	}
}

func dumpMetrics(g prometheus.Gatherer, w io.Writer, log *zap.Logger) {
	families, err := g.Gather()
	if err != nil {
		log.Warn("gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			log.Warn("write metrics", zap.Error(err))
			return
		}
	}
}
