package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	btree "github.com/andjam/kvbtree"
	"github.com/carlmjohnson/versioninfo"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

func run(args []string) error {
	return newApp(os.Stdin, os.Stdout, os.Stderr).Run(args)
}

func newApp(in io.Reader, out, errOut io.Writer) *cli.App {
	app := &cli.App{
		Name:      "btreectl",
		Usage:     "drive an in-memory B-tree from the command line",
		Version:   versioninfo.Short(),
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "degree",
				Aliases: []string{"d"},
				Usage:   "entry count at which a node splits (at least 3)",
				Value:   3,
				EnvVars: []string{"BTREE_DEGREE"},
			},
			&cli.StringFlag{
				Name:    "keys",
				Usage:   "key ordering: string (lexical) or int (numeric)",
				Value:   "string",
				EnvVars: []string{"BTREE_KEYS"},
			},
			&cli.BoolFlag{
				Name:    "check",
				Usage:   "verify every tree invariant after each mutation",
				EnvVars: []string{"BTREE_CHECK"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log verbosity: debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"BTREE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "log output: text or json",
				Value:   "text",
				EnvVars: []string{"BTREE_LOG_FORMAT"},
			},
		},
		Before: func(cctx *cli.Context) error {
			_, err := setupLogger(cctx.App.ErrWriter, cctx.String("log-level"), cctx.String("log-format"))
			return err
		},
	}
	app.Commands = []*cli.Command{
		cmdRun,
		cmdDemo,
		cmdFill,
	}
	return app
}

// keyOrder compares keys as strings or, for numeric trees, as integers.
type keyOrder struct {
	numeric bool
}

func parseKeyOrder(s string) (keyOrder, error) {
	switch strings.ToLower(s) {
	case "string", "":
		return keyOrder{}, nil
	case "int":
		return keyOrder{numeric: true}, nil
	}
	return keyOrder{}, errors.Newf("unknown key ordering %q", s)
}

// check rejects keys the ordering cannot compare.
func (o keyOrder) check(key string) error {
	if !o.numeric {
		return nil
	}
	if _, err := strconv.ParseInt(key, 10, 64); err != nil {
		return errors.Newf("key %q is not an integer", key)
	}
	return nil
}

func (o keyOrder) compare(a, b string) int {
	if o.numeric {
		x, errx := strconv.ParseInt(a, 10, 64)
		y, erry := strconv.ParseInt(b, 10, 64)
		if errx == nil && erry == nil {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(a, b)
}

// newTree builds the tree described by the global flags.
func newTree(cctx *cli.Context) (*btree.Tree[string, string], keyOrder, error) {
	order, err := parseKeyOrder(cctx.String("keys"))
	if err != nil {
		return nil, order, err
	}
	tree, err := btree.New[string, string](cctx.Int("degree"), order.compare,
		btree.WithLogger(logger),
		btree.WithInvariantChecks(cctx.Bool("check")),
	)
	if err != nil {
		return nil, order, err
	}
	return tree, order, nil
}
