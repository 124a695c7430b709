package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-retro/Sets"
)

func NewDictCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dict",
		Short: "Drive a retroactive dictionary",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDict(Sets.NewDictionary[int64](), newTokens(os.Stdin), os.Stdout, true)
		},
	}
}

func runDict(d *Sets.Dictionary[int64], tk *tokens, out io.Writer, allowFiles bool) error {
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
			reply(out, d.Insert(c.X), "ok", "not ok")
		case "insert_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, d.InsertAt(c.X, c.Tm), "ok", "not ok")
		case "erase":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, d.Erase(c.X), "ok", "not ok")
		case "erase_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, d.EraseAt(c.X, c.Tm), "ok", "not ok")
		case "delete_operation":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, d.DeleteOperation(c.Tm), "ok", "not ok")
		case "find":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, d.Find(c.X), "found", "not found")
		case "find_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, d.FindAt(c.X, c.Tm), "found", "not found")
		case "run":
			name, in := tk.next()
			if !in {
				return io.ErrUnexpectedEOF
			}
			if allowFiles {
				if err = runScript(name, func(ftk *tokens, nested bool) error {
					return runDict(d, ftk, out, nested)
				}); err != nil {
					return err
				}
			}
		case "clear":
			trace(c)
			d.Clear()
		}
	}
}
