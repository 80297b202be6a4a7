package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var demoEntries = []struct {
	key   string
	value int
}{
	{"Shihira", 19},
	{"AVLTree", 80},
	{"Tests", 39},
	{"Sentences", 13},
	{"Here Are", 24},
	{"Trivial", 56},
	{"Hello", 78},
	{"World", 98},
	{"DataStruct", 12},
	{"Trivial", 34},
	{"Computer", 47},
	{"Science", 17},
}

var cmdDemo = &cli.Command{
	Name:   "demo",
	Usage:  "insert a fixed set of names, printing the tree after each",
	Action: runDemo,
}

func runDemo(cctx *cli.Context) error {
	tree, _, err := newTree(cctx)
	if err != nil {
		return err
	}
	out := cctx.App.Writer
	for _, e := range demoEntries {
		tree.Set(e.key, strconv.Itoa(e.value))
		fmt.Fprintf(out, "set %q %d\n", e.key, e.value)
		fmt.Fprintln(out, render(tree))
	}
	printStats(out, tree)
	return nil
}

var cmdFill = &cli.Command{
	Name:  "fill",
	Usage: "insert generated keys and report the resulting shape",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "count",
			Usage: "number of insertions",
			Value: 100,
		},
		&cli.Int64Flag{
			Name:  "seed",
			Usage: "generator seed",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "print",
			Usage: "render the tree after filling",
		},
	},
	Action: runFill,
}

func runFill(cctx *cli.Context) error {
	count := cctx.Int("count")
	if count < 0 {
		return errors.Newf("count must not be negative, got %d", count)
	}
	tree, order, err := newTree(cctx)
	if err != nil {
		return err
	}

	faker := gofakeit.New(cctx.Int64("seed"))
	for i := 0; i < count; i++ {
		key := faker.Word()
		if order.numeric {
			key = strconv.Itoa(faker.Number(0, 10*count))
		}
		tree.Set(key, strconv.Itoa(faker.Number(0, 1000)))
	}
	slog.Info("filled tree", "insertions", count, "keys", tree.Len())

	if err := tree.Verify(); err != nil {
		return err
	}
	out := cctx.App.Writer
	if cctx.Bool("print") {
		fmt.Fprintln(out, render(tree))
	}
	printStats(out, tree)
	return nil
}
