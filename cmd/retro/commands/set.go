package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-retro/Sets"
)

func NewSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Drive a fully retroactive ordered set",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSet(Sets.NewRetroSet[int64](), newTokens(os.Stdin), os.Stdout, true)
		},
	}
}

func runSet(s *Sets.RetroSet[int64], tk *tokens, out io.Writer, allowFiles bool) error {
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
			reply(out, s.Insert(c.X), "ok", "not ok")
		case "insert_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, s.InsertAt(c.X, c.Tm), "ok", "not ok")
		case "erase":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, s.Erase(c.X), "ok", "not ok")
		case "erase_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, s.EraseAt(c.X, c.Tm), "ok", "not ok")
		case "delete_operation":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, s.DeleteOperation(c.Tm), "ok", "not ok")
		case "lower_bound":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			replyKey(out, s.LowerBound(c.X))
		case "lower_bound_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			replyKey(out, s.LowerBoundAt(c.X, c.Tm))
		case "upper_bound":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			replyKey(out, s.UpperBound(c.X))
		case "upper_bound_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			replyKey(out, s.UpperBoundAt(c.X, c.Tm))
		case "find":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, s.Find(c.X), "found", "not found")
		case "find_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, s.FindAt(c.X, c.Tm), "found", "not found")
		case "run":
			name, in := tk.next()
			if !in {
				return io.ErrUnexpectedEOF
			}
			if allowFiles {
				if err = runScript(name, func(ftk *tokens, nested bool) error {
					return runSet(s, ftk, out, nested)
				}); err != nil {
					return err
				}
			}
		case "clear":
			trace(c)
			s.Clear()
		}
	}
}
