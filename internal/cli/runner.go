package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/compare/internal/compare"
	"github.com/idilsaglam/compare/internal/config"
	"github.com/idilsaglam/compare/internal/ui"
)

// Options tune where output goes and, for embedding and tests, let the
// caller supply configuration and a logger instead of building them.
type Options struct {
	Out io.Writer
	Err io.Writer

	Config *config.Config
	Logger *zap.Logger
}

// exitError carries an exit code. A nil err exits quietly.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &exitError{code: 2, err: fmt.Errorf(format, args...)}
}

// Run executes the command line and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Out == nil {
		opt.Out = os.Stdout
	}
	if opt.Err == nil {
		opt.Err = os.Stderr
	}

	root := newRootCmd(&opt)
	root.SetArgs(args)
	root.SetOut(opt.Out)
	root.SetErr(opt.Err)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			ui.Fail(opt.Err, ee.err.Error())
		}
		return ee.code
	}
	ui.Fail(opt.Err, err.Error())
	return 1
}

// state is shared by every subcommand of one Run.
type state struct {
	opt        *Options
	configPath string
	verbose    bool
	theme      string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd(opt *Options) *cobra.Command {
	s := &state{opt: opt}

	root := &cobra.Command{
		Use:   "compare",
		Short: "compare - keep a short list of courses to compare",
		Long: `compare keeps a bounded list of courses side by side.

The list is saved after every change and restored on the next run.`,
		Version:       compare.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usagef("unknown subcommand: %s", args[0])
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if s.log != nil {
				_ = s.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(opt.Err)
			_ = cmd.Help()
			return &exitError{code: 2}
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usagef("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&s.configPath, "config", config.DefaultPath, "path to the YAML config file")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&s.theme, "theme", "", "output theme: classic, neon, mono")

	root.AddCommand(
		newAddCmd(s),
		newRemoveCmd(s),
		newListCmd(s),
		newHasCmd(s),
		newClearCmd(s),
		newTUICmd(s),
		newConfigCmd(s),
	)
	return root
}

func (s *state) setup() error {
	cfg := s.opt.Config
	if cfg == nil {
		loaded, err := config.Load(s.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if s.theme != "" {
		cfg.UI.Theme = s.theme
	}
	s.cfg = cfg

	ui.SetTheme(cfg.UI.Theme)
	if cfg.UI.NoColor {
		ui.SetColorForcing(false, true)
	}

	log := s.opt.Logger
	if log == nil {
		built, err := newLogger(cfg.Log, s.verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log = built
	}
	s.log = log
	zap.ReplaceGlobals(log)
	return nil
}
