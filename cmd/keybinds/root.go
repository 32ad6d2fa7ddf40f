package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dshills/keybinds/internal/app"
	"github.com/dshills/keybinds/internal/command"
	"github.com/dshills/keybinds/internal/config"
	"github.com/dshills/keybinds/internal/config/kv"
	"github.com/dshills/keybinds/internal/input/key"
	"github.com/dshills/keybinds/internal/logging"
)

// cli carries state shared by all subcommands of one invocation.
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     Config
	log     logr.Logger
	syncLog func()
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), log: logr.Discard(), syncLog: func() {}}
	setDefaults(c.v)

	root := &cobra.Command{
		Use:           "keybinds",
		Short:         "Inspect, customize and try keyboard and mouse bindings",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(c.v, cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			cfg, err := loadConfig(c.v, c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg

			log, sync, err := logging.New(logging.Options{Level: cfg.LogLevel, Output: errOut})
			if err != nil {
				return err
			}
			c.log = logging.Component(log, cmd.Name())
			c.syncLog = sync
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			c.syncLog()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default ./keybinds.toml or the user config dir)")
	flags.String("schema", "", "binding schema file (.toml, .yaml, .json); empty uses the built-in demo schema")
	flags.String("handlers", "", "Lua handler script for run")
	flags.String("platform", "auto", "platform for $mod: auto, apple or other")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.Duration("hold-delay", 0, "hold-to-reveal delay for run")
	flags.String("storage", "file", "override storage: memory, file or sqlite")
	flags.String("storage-path", "", "override storage file or database path")
	flags.String("storage-key", "keybinds:overrides", "key overrides are stored under")

	root.AddCommand(
		c.newValidateCmd(),
		c.newSearchCmd(),
		c.newCheatsheetCmd(),
		c.newBindingsCmd(),
		c.newRunCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "keybinds %s (%s)\n", version, commit)
			return err
		},
	}
}

// workspace is the schema, store and parser one command works on.
type workspace struct {
	schema config.Schema
	store  *config.Store
	kv     kv.Store
	parser key.Parser
	close  func() error
}

func (c *cli) open() (*workspace, error) {
	schema, err := c.cfg.loadSchema()
	if err != nil {
		return nil, err
	}
	backend, closeKV, err := c.cfg.openKV()
	if err != nil {
		return nil, err
	}
	store := config.NewStore(schema, c.cfg.Storage.Key, backend, config.WithLogger(c.log))
	return &workspace{
		schema: schema,
		store:  store,
		kv:     backend,
		parser: c.cfg.parser(),
		close:  closeKV,
	}, nil
}

// commands builds inert commands for every schema entry, for inspection.
func (w *workspace) commands(log logr.Logger) []*command.Command {
	handlers := make(app.Handlers, len(w.schema))
	for id := range w.schema {
		handlers[id] = func(command.Context, command.Event) command.Result { return command.Handled }
	}
	return app.FromBindings(w.store.Get(), handlers, nil, log)
}

// parseContext converts --ctx key=value pairs, typing booleans and
// integers.
func parseContext(pairs map[string]string) command.Context {
	ctx := make(command.Context, len(pairs))
	for k, v := range pairs {
		if b, err := strconv.ParseBool(v); err == nil {
			ctx[k] = b
			continue
		}
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			ctx[k] = n
			continue
		}
		ctx[k] = v
	}
	return ctx
}

// formatBindings renders a command's triggers for display.
func formatBindings(p key.Parser, keys, mouse []string) string {
	parts := make([]string, 0, len(keys)+len(mouse))
	for _, k := range keys {
		parts = append(parts, key.Format(k, p.Platform))
	}
	for _, m := range mouse {
		parts = append(parts, key.Format(m, p.Platform))
	}
	return strings.Join(parts, "  ")
}
