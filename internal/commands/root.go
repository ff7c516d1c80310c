// Package commands implements the yamlprops command line.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reoring/yamlprops/i18n"
)

// Version is set at build time.
var Version = "dev"

// envPrefix prefixes environment overrides, e.g. YAMLPROPS_ENCODING.
const envPrefix = "YAMLPROPS"

// app carries the dependencies shared by every command.
type app struct {
	fs     afero.Fs
	out    io.Writer
	errOut io.Writer
	v      *viper.Viper
	logger log.Logger
}

// NewRootCmd builds the command tree. Files are opened through fs.
func NewRootCmd(fs afero.Fs, out, errOut io.Writer) *cobra.Command {
	a := &app{fs: fs, out: out, errOut: errOut, v: viper.New(), logger: log.NewNopLogger()}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "yamlprops",
		Short: "yamlprops - flat property documents from a YAML subset",
		Long: `yamlprops parses block-style YAML made of scalar and list properties
into a flat document of dotted keys, optionally validating it against a schema.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			logger, err := newLogger(a.errOut, a.v.GetString("log.level"))
			if err != nil {
				return err
			}
			a.logger = logger
			i18n.SetLanguage(a.v.GetString("lang"))
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().String("log.level", "info", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("lang", "en", "Language of error messages: en, ja")

	root.AddCommand(newParseCmd(a), newCheckCmd(a), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yamlprops %s\n", Version)
		},
	})
	return root
}

// Execute runs the command line against the OS file system.
func Execute(out, errOut io.Writer, args []string) error {
	root := NewRootCmd(afero.NewOsFs(), out, errOut)
	root.SetArgs(args)
	return root.Execute()
}

func newLogger(w io.Writer, lvl string) (log.Logger, error) {
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info", "":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}
