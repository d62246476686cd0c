package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/pkg/logger"
	"github.com/oakwood-commons/hris/pkg/settings"
)

// errShowHelp is returned when a command is run without the input it needs
// and stdin is a terminal.
var errShowHelp = errors.New("no input provided")

// cliState is what PersistentPreRunE resolves for the subcommands: run
// options from the global flags, the effective config and the logger.
type cliState struct {
	run *settings.Run
	cfg config.Config
	log logr.Logger
}

func newRootCmd() *cobra.Command {
	st := &cliState{run: settings.NewCliParams(), log: logr.Discard()}

	root := &cobra.Command{
		Use:           settings.CliBinaryName,
		Short:         "Terminal console for the HRIS server",
		Long:          rootLongHelp(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cliVersionString(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&st.run.ConfigPath, "config", "", fmt.Sprintf("path to a YAML config file (default $%s)", settings.ConfigEnvVar))
	flags.Var(newLogLevelValue(&st.run.MinLogLevel), "log-level", "minimum log level: debug|info|warn|error or a number (default from config)")
	flags.StringVar(&st.run.LogFile, "log-file", "", "write logs to this file instead of stderr")
	flags.BoolVar(&st.run.NoColor, "no-color", false, "disable color output")
	flags.StringVar(&st.run.Role, "role", "", "override the role found in the page data")
	flags.BoolVar(&st.run.DryRun, "dry-run", false, "log form submissions instead of sending them")

	root.AddCommand(
		newDashboardCmd(st),
		newSelectCmd(st),
		newListCmd(st),
		newLetterCmd(st),
		newConfigCmd(st),
		newVersionCmd(),
	)
	return root
}

// setup loads the config, installs the logger and stores both in the
// command's context. Flags win over config values.
func (st *cliState) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(st.run.ConfigPath)
	if err != nil {
		return err
	}
	st.cfg = cfg

	flags := cmd.Flags()
	if f := flags.Lookup("log-level"); f == nil || !f.Changed {
		st.run.MinLogLevel = cfg.Log.Level
	}
	if f := flags.Lookup("log-file"); f == nil || !f.Changed {
		if st.run.LogFile == "" {
			st.run.LogFile = cfg.Log.File
		}
	}
	if os.Getenv("NO_COLOR") != "" {
		st.run.NoColor = true
	}

	lgr, err := logger.Setup(logger.Options{Level: st.run.MinLogLevel, File: st.run.LogFile})
	if err != nil {
		return err
	}
	lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
	st.log = *lgr

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = settings.IntoContext(ctx, st.run)
	ctx = logger.WithLogger(ctx, lgr)
	cmd.SetContext(ctx)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime)
}

func rootLongHelp() string {
	return strings.TrimSpace(`
hris renders the HRIS role dashboard in the terminal. Page data comes from
the server as JSON, YAML, NDJSON or TOML, in a file or on stdin; forms are
posted back to the configured server.

Interactive commands log to --log-file (or log.file in the config) because
the terminal belongs to the renderer.`)
}

// logLevelValue parses --log-level as a zap level name or number.
type logLevelValue struct {
	level *int8
}

var _ pflag.Value = logLevelValue{}

func newLogLevelValue(p *int8) logLevelValue { return logLevelValue{level: p} }

var levelNames = map[string]int8{
	"debug": -1,
	"info":  0,
	"warn":  1,
	"error": 2,
}

func (v logLevelValue) String() string {
	if v.level == nil {
		return "info"
	}
	for name, l := range levelNames {
		if l == *v.level {
			return name
		}
	}
	return strconv.Itoa(int(*v.level))
}

func (v logLevelValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := levelNames[s]; ok {
		*v.level = l
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return fmt.Errorf("invalid log level %q (expected debug, info, warn, error or a number)", s)
	}
	*v.level = int8(n)
	return nil
}

func (logLevelValue) Type() string { return "level" }
