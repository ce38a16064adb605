package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	pipeline "github.com/mumoshu/pipeline/pkg"
	"github.com/mumoshu/pipeline/pkg/util/fileutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	CommandName = "pipeline"
	EnvPrefix   = "PIPELINE"
)

type Opts struct {
	CommandPath string
	Args        []string
	Log         *logrus.Logger

	// Out receives what steps and observers print. Defaults to os.Stdout.
	Out io.Writer
	// LogWriter overrides the log destination chosen by --logtostderr.
	LogWriter io.Writer

	Viper *viper.Viper
}

type app struct {
	log       *logrus.Logger
	out       io.Writer
	logWriter io.Writer
	v         *viper.Viper
}

// New returns the root command with every subcommand attached and its
// persistent flags bound to the config keys.
func New(opts ...Opts) (*cobra.Command, error) {
	var o Opts
	if len(opts) == 1 {
		o = opts[0]
	} else if len(opts) > 1 {
		return nil, fmt.Errorf("unexpected number of opts: %d", len(opts))
	}

	a := &app{
		log:       o.Log,
		out:       o.Out,
		logWriter: o.LogWriter,
		v:         o.Viper,
	}
	if a.log == nil {
		a.log = logrus.StandardLogger()
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.v == nil {
		a.v = viper.New()
	}

	name := CommandName
	if o.CommandPath != "" {
		name = filepath.Base(o.CommandPath)
	}

	rootCmd := &cobra.Command{
		Use:           name,
		Short:         "Run steps wired together by the types of their results",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			return a.updateLoggingConfiguration()
		},
	}
	rootCmd.SetOut(a.out)

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.StringP("output", "o", "text", "Log format. One of: text|json|message")
	flags.BoolP("color", "C", true, "Colorize output")
	flags.StringP("config-file", "c", "", "Path to config file")
	flags.Bool("logtostderr", true, "write log messages to stderr")

	for _, key := range []string{"verbose", "output", "color", "config-file", "logtostderr"} {
		if err := a.bind(key, flags.Lookup(key)); err != nil {
			return nil, err
		}
	}

	a.setDefaults()

	rootCmd.AddCommand(
		newRunCmd(a),
		newDescribeCmd(a),
		newVersionCmd(a),
	)

	if o.Args != nil {
		rootCmd.SetArgs(o.Args)
	}

	return rootCmd, nil
}

func (a *app) setDefaults() {
	v := a.v

	v.SetDefault("log_level", "info")
	v.SetDefault("output", "text")
	v.SetDefault("color", true)
	v.SetDefault("logtostderr", true)
	v.SetDefault("definition", "")
	v.SetDefault("format", "{{ .Message }}")

	for level, color := range pipeline.DefaultLogColors {
		v.SetDefault(logColorKey(level), color)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	//Substitute the . and - to _,
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (a *app) loadConfig() error {
	v := a.v

	if f := v.GetString("config-file"); f != "" {
		v.SetConfigFile(f)
		if err := v.MergeInConfig(); err != nil {
			return errors.Wrapf(err, "loading config file %s", f)
		}
		return nil
	}

	configFile := fmt.Sprintf("%s.yaml", CommandName)
	msg := fmt.Sprintf("loading config file %s...", configFile)
	if !fileutil.Exists(configFile) {
		a.log.Debugf("%smissing", msg)
		return nil
	}

	v.SetConfigFile(configFile)
	if err := v.MergeInConfig(); err != nil {
		a.log.Errorf("%serror", msg)
		return errors.Wrapf(err, "loading config file %s", configFile)
	}
	a.log.Debugf("%sdone", msg)

	return nil
}

func (a *app) updateLoggingConfiguration() error {
	colors := map[logrus.Level]string{}
	for _, level := range logrus.AllLevels {
		colors[level] = a.v.GetString(logColorKey(level))
	}

	return pipeline.ConfigureLogger(a.log, pipeline.LogConfig{
		Level:       a.v.GetString("log_level"),
		Verbose:     a.v.GetBool("verbose"),
		Output:      a.v.GetString("output"),
		Colorize:    a.v.GetBool("color"),
		Colors:      colors,
		Writer:      a.logWriter,
		LogToStderr: a.v.GetBool("logtostderr"),
	})
}

func logColorKey(level logrus.Level) string {
	return fmt.Sprintf("log_color_%s", level)
}
