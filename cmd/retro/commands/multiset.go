package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-retro/Sets"
)

func NewMultisetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "multiset",
		Short: "Drive a retroactive unordered multiset",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runMultiset(Sets.NewMultiset[int64](), newTokens(os.Stdin), os.Stdout, true)
		},
	}
}

func runMultiset(m *Sets.Multiset[int64], tk *tokens, out io.Writer, allowFiles bool) error {
	for {
		op, in := tk.next()
		if !in || op == "finish" {
			return nil
		}
		c := command{Op: op}
		var err error
		switch op {
		case "insert":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, m.Insert(c.X), "ok", "not ok")
		case "insert_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, m.InsertAt(c.X, c.Tm), "ok", "not ok")
		case "erase":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, m.Erase(c.X), "ok", "not ok")
		case "erase_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, m.EraseAt(c.X, c.Tm), "ok", "not ok")
		case "delete_operation":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, m.DeleteOperation(c.Tm), "ok", "not ok")
		case "find":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, m.Find(c.X), "found", "not found")
		case "find_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, m.FindAt(c.X, c.Tm), "found", "not found")
		case "run":
			name, in := tk.next()
			if !in {
				return io.ErrUnexpectedEOF
			}
			if allowFiles {
				if err = runScript(name, func(ftk *tokens, nested bool) error {
					return runMultiset(m, ftk, out, nested)
				}); err != nil {
					return err
				}
			}
		case "clear":
			trace(c)
			m.Clear()
		}
	}
}
