package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomz197/pong/internal/audio"
	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/loop/client"
	"github.com/tomz197/pong/internal/match"
	"golang.org/x/term"
)

const soundVolume = 0.6

func main() {
	envErr := config.LoadDotEnv()
	// Raw mode owns stdout, so logs go to stderr
	logger := config.NewLogger(os.Stderr, "pong")
	if envErr != nil {
		logger.Warn("ignoring .env", "err", envErr)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Error("failed to enable raw mode", "err", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := client.ClientOptions{
		Logger: logger,
		Muted:  config.GetEnvBool("PONG_MUTE", false),
	}
	if seed, ok := config.GetEnvUint64("PONG_SEED"); ok {
		opts.Random = match.NewRandom(seed)
	}

	// Audio is optional: without a device the terminal bell plays instead
	if synth, err := audio.New(soundVolume); err != nil {
		logger.Warn("audio unavailable, using terminal bell", "err", err)
	} else {
		opts.Notifier = synth
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader := bufio.NewReader(os.Stdin)
	if err := client.NewClient(reader, os.Stdout, opts).Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
