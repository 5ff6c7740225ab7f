package main

//go:generate mockgen -source=commands.go -destination=mock_commands.go -package=main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sbilibin2017/gw-inventory/internal/services"
)

// FlagStore is the part of the flag repository the commands drive.
type FlagStore interface {
	IsEnabled(ctx context.Context, flag, subject string) (bool, error)
	SetFlag(ctx context.Context, flag string, enabled bool) error
	EnableFor(ctx context.Context, flag, subject string) error
	DisableFor(ctx context.Context, flag, subject string) error
}

var errUsage = errors.New("usage")

const usage = `usage: flagctl [-c config.env] <command> <flag> [args]

commands:
  get <flag> [subject]       print the value of flag for subject (default anonymous)
  set <flag> on|off          set the global value of flag
  enable <flag> <subject>    switch flag on for one user id
  disable <flag> <subject>   remove the per-user override
`

// execute runs one command against store and writes the result to out.
func execute(ctx context.Context, store FlagStore, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errUsage
	}
	cmd, flag := args[0], args[1]

	switch cmd {
	case "get":
		if len(args) > 3 {
			return errUsage
		}
		subject := services.AnonymousSubject
		if len(args) == 3 {
			subject = args[2]
		}
		enabled, err := store.IsEnabled(ctx, flag, subject)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s for %s: %s\n", flag, subject, onOff(enabled))
		return err

	case "set":
		if len(args) != 3 {
			return errUsage
		}
		enabled, err := parseOnOff(args[2])
		if err != nil {
			return err
		}
		if err := store.SetFlag(ctx, flag, enabled); err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s: %s\n", flag, onOff(enabled))
		return err

	case "enable", "disable":
		if len(args) != 3 {
			return errUsage
		}
		subject := args[2]
		var err error
		if cmd == "enable" {
			err = store.EnableFor(ctx, flag, subject)
		} else {
			err = store.DisableFor(ctx, flag, subject)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s for %s: %sd\n", flag, subject, cmd)
		return err
	}

	return errUsage
}

func parseOnOff(v string) (bool, error) {
	switch v {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", v)
	}
	return b, nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
