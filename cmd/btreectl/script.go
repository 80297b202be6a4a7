package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	btree "github.com/andjam/kvbtree"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var cmdRun = &cli.Command{
	Name:      "run",
	Usage:     "execute a script of tree statements",
	ArgsUsage: `[<script-file>]`,
	Description: `Reads one statement per line from the file, or from stdin when no file
or "-" is given. Statements:

   set <key> <value...>    insert or update a key
   get <key>               print the value of a key, or (absent)
   unset <key>             remove a key
   traverse [lpr|plr|lrp]  print every key in the given order
   print                   render the node structure
   stats                   print size, height and structural counters
   verify                  check every tree invariant
   clear                   remove every key

Blank lines and lines starting with # are ignored.`,
	Action: runScript,
}

func runScript(cctx *cli.Context) error {
	in := cctx.App.Reader
	if path := cctx.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	tree, order, err := newTree(cctx)
	if err != nil {
		return err
	}
	s := &session{tree: tree, order: order, out: cctx.App.Writer}
	return s.run(in)
}

// session executes statements against one tree.
type session struct {
	tree  *btree.Tree[string, string]
	order keyOrder
	out   io.Writer
}

func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.exec(line); err != nil {
			return errors.Wrapf(err, "line %d", lineno)
		}
	}
	return scanner.Err()
}

func (s *session) exec(line string) error {
	fields := strings.Fields(line)
	stmt, args := fields[0], fields[1:]

	switch stmt {
	case "set":
		if len(args) < 2 {
			return errors.New("usage: set <key> <value...>")
		}
		if err := s.order.check(args[0]); err != nil {
			return err
		}
		s.tree.Set(args[0], strings.Join(args[1:], " "))
	case "get":
		if len(args) != 1 {
			return errors.New("usage: get <key>")
		}
		if v, found := s.tree.Get(args[0]); found {
			fmt.Fprintln(s.out, v)
		} else {
			fmt.Fprintln(s.out, "(absent)")
		}
	case "unset":
		if len(args) != 1 {
			return errors.New("usage: unset <key>")
		}
		if err := s.tree.Unset(args[0]); err != nil {
			if !errors.Is(err, btree.ErrKeyNotFound) {
				return err
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	case "traverse":
		order := btree.LPR
		if len(args) > 1 {
			return errors.New("usage: traverse [lpr|plr|lrp]")
		}
		if len(args) == 1 {
			var err error
			if order, err = btree.ParseOrder(args[0]); err != nil {
				return err
			}
		}
		var keys []string
		s.tree.Traverse(order, func(key, _ string) {
			keys = append(keys, key)
		})
		fmt.Fprintln(s.out, strings.Join(keys, " "))
	case "print":
		fmt.Fprint(s.out, render(s.tree))
	case "stats":
		printStats(s.out, s.tree)
	case "verify":
		if err := s.tree.Verify(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "ok")
	case "clear":
		s.tree.Clear()
	default:
		return errors.Newf("unknown statement %q", stmt)
	}
	return nil
}

func printStats(w io.Writer, tree *btree.Tree[string, string]) {
	st := tree.Stats()
	fmt.Fprintf(w, "len=%d height=%d splits=%d merges=%d rotations=%d/%d grows=%d shrinks=%d\n",
		tree.Len(), tree.Height(), st.Splits, st.Merges,
		st.RightRotations, st.LeftRotations, st.Grows, st.Shrinks)
}
