package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-retro/Queues"
)

func NewDequeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deque",
		Short: "Drive a retroactive deque",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDeque(Queues.NewRetroDeque[int64](), newTokens(os.Stdin), os.Stdout, true)
		},
	}
}

func runDeque(q *Queues.RetroDeque[int64], tk *tokens, out io.Writer, allowFiles bool) error {
	for {
		op, in := tk.next()
		if !in || op == "finish" {
			return nil
		}
		c := command{Op: op}
		var err error
		switch op {
		case "push_back", "push_front":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			if op == "push_back" {
				fmt.Fprintln(out, q.PushBack(c.X))
			} else {
				fmt.Fprintln(out, q.PushFront(c.X))
			}
		case "push_back_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, q.PushBackAt(c.X, c.Tm), "ok", "not ok")
		case "push_front_retro":
			if c.X, err = tk.int64(); err != nil {
				return err
			}
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, q.PushFrontAt(c.X, c.Tm), "ok", "not ok")
		case "pop_back", "pop_front":
			trace(c)
			if q.Empty() {
				fmt.Fprintln(out, "not ok")
			} else if op == "pop_back" {
				fmt.Fprintln(out, q.PopBack())
			} else {
				fmt.Fprintln(out, q.PopFront())
			}
		case "pop_back_retro":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, q.PopBackAt(c.Tm), "ok", "not ok")
		case "pop_front_retro":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, q.PopFrontAt(c.Tm), "ok", "not ok")
		case "delete_operation":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			reply(out, q.DeleteOperation(c.Tm), "ok", "not ok")
		case "back", "front":
			trace(c)
			if q.Empty() {
				fmt.Fprintln(out, "not ok")
				break
			}
			var v int64
			if op == "back" {
				v, _ = q.Back()
			} else {
				v, _ = q.Front()
			}
			fmt.Fprintln(out, v)
		case "back_retro":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			v, _ := q.BackAt(c.Tm)
			fmt.Fprintln(out, v)
		case "front_retro":
			if c.Tm, err = tk.int64(); err != nil {
				return err
			}
			trace(c)
			v, _ := q.FrontAt(c.Tm)
			fmt.Fprintln(out, v)
		case "size":
			trace(c)
			fmt.Fprintln(out, q.Size())
		case "run":
			name, in := tk.next()
			if !in {
				return io.ErrUnexpectedEOF
			}
			if allowFiles {
				if err = runScript(name, func(ftk *tokens, nested bool) error {
					return runDeque(q, ftk, out, nested)
				}); err != nil {
					return err
				}
			}
		case "clear":
			trace(c)
			q.Clear()
		}
	}
}
