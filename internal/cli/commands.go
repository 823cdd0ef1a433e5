package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/compare/internal/compare"
	"github.com/idilsaglam/compare/internal/events"
	"github.com/idilsaglam/compare/internal/tui"
	"github.com/idilsaglam/compare/internal/ui"
)

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

// warnTo prints limit warnings with the current count.
func (s *state) warnTo(cmd *cobra.Command) compare.Warner {
	return compare.WarnFunc(func(msg string) {
		ui.Warn(cmd.ErrOrStderr(), fmt.Sprintf("%s (%d/%d)", msg, s.cfg.Limit, s.cfg.Limit))
	})
}

// withApp opens the list with the command's limit warner.
func (s *state) withApp(cmd *cobra.Command, fn func(a *app) error) error {
	return s.withWarner(s.warnTo(cmd), fn)
}

// withWarner opens the list, runs fn and closes it, keeping the first error.
func (s *state) withWarner(w compare.Warner, fn func(a *app) error) (err error) {
	a, err := s.open(w)
	if err != nil {
		return err
	}
	defer func() { err = a.closeWith(err) }()
	return fn(a)
}

func newAddCmd(s *state) *cobra.Command {
	const usage = "compare add <id> <name...>"
	return &cobra.Command{
		Use:   "add <id> <name...>",
		Short: "Add a course to the comparison (name can be multiple words)",
		Args:  minArgs(2, usage),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if id == "" || name == "" {
				return usagef("usage: %s", usage)
			}
			return s.withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				a.bus.Subscribe(events.ItemAdded, func(ev events.Event) {
					ui.OK(out, "added "+ev.Item.String())
				})
				a.bus.Subscribe(events.ItemUpdated, func(ev events.Event) {
					ui.OK(out, "already comparing "+ev.Item.String())
				})
				a.ctrl.AddToCompare(id, name)
				return nil
			})
		},
	}
}

func newRemoveCmd(s *state) *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:     "rm <id> | rm --index <n>",
		Aliases: []string{"remove"},
		Short:   "Remove a course by id, or by 1-based position",
		Args: func(cmd *cobra.Command, args []string) error {
			if (index == 0) == (len(args) == 0) || len(args) > 1 {
				return usagef("usage: compare rm <id> | compare rm --index <n>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(a *app) error {
				var removed bool
				a.bus.Subscribe(events.ItemRemoved, func(ev events.Event) {
					if ev.Item != nil {
						removed = true
						ui.OK(cmd.OutOrStdout(), "removed "+ev.Item.String())
					}
				})

				if index != 0 {
					total := a.ctrl.TotalCompareItems()
					a.ctrl.RemoveAt(index - 1)
					if !removed {
						fmt.Fprintln(cmd.ErrOrStderr(), ui.CW(cmd.ErrOrStderr(), ui.Current().Muted,
							"Hint: run `compare ls` to see valid positions"))
						return usagef("index out of range: have %d, got %d", total, index)
					}
					return nil
				}

				a.ctrl.RemoveFromCompare(args[0])
				if !removed {
					return &exitError{code: 1, err: fmt.Errorf("not in comparison: %s", args[0])}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", 0, "1-based position to remove")
	return cmd
}

func newListCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the courses being compared",
		Args:    exactArgs(0, "compare ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(a *app) error {
				renderList(cmd, a.ctrl)
				return nil
			})
		},
	}
}

func renderList(cmd *cobra.Command, ctrl *compare.Controller) {
	out := cmd.OutOrStdout()
	t := ui.Current()
	items := ctrl.ItemsCompare()

	var lines []string
	lines = append(lines, fmt.Sprintf("%s  %s %d",
		ui.CW(out, t.Title, "Compare"),
		ui.CW(out, t.Accent, "Total"), len(items)))
	lines = append(lines, ui.CW(out, t.Muted, ui.CapacityBar(len(items), ctrl.Limit())))
	lines = append(lines, "")

	if len(items) == 0 {
		lines = append(lines, ui.CW(out, t.Muted, "no items"))
	}
	for i, it := range items {
		name := ansi.Truncate(it.Name(), 60, "...")
		lines = append(lines, fmt.Sprintf("%s %s %s",
			ui.CW(out, t.Muted, fmt.Sprintf("%2d.", i+1)),
			ui.CW(out, t.Success, t.SlotTaken),
			name+ui.CW(out, t.Muted, "  "+it.ID())))
	}
	lines = append(lines, "")
	lines = append(lines, ui.CW(out, t.Muted, "Tip: add with `compare add <id> \"Course name\"`"))
	ui.Panel(out, lines)
}

func newHasCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "has <id>",
		Short: "Report whether a course is in the comparison (exit 1 if not)",
		Args:  exactArgs(1, "compare has <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(a *app) error {
				if a.ctrl.ShowCompareButton(args[0]) {
					fmt.Fprintln(cmd.OutOrStdout(), "yes")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), "no")
				return &exitError{code: 1}
			})
		},
	}
}

func newClearCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every course and delete the saved list",
		Args:  exactArgs(0, "compare clear"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withApp(cmd, func(a *app) error {
				if err := a.ctrl.Clear(); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "cleared")
				return nil
			})
		},
	}
}

func newTUICmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive list (a add, d remove, u undo, c clear, q quit)",
		Args:  exactArgs(0, "compare tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := &tui.Status{}
			return s.withWarner(status, func(a *app) error {
				return tui.Run(a.ctrl, status, tui.Options{CompareURL: s.cfg.CompareURL})
			})
		},
	}
}

func newConfigCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  exactArgs(0, "compare config"),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := s.cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
