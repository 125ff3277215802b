package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	hconsole "github.com/msto63/hcmd/foundation/console"
	"github.com/msto63/hcmd/foundation/console/output"
	mdwerror "github.com/msto63/hcmd/foundation/core/error"
	mdwlog "github.com/msto63/hcmd/foundation/core/log"
	"github.com/msto63/hcmd/pkg/core/config"
	"github.com/msto63/hcmd/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	logger    *mdwlog.Logger
	logFile   io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "hcmd",
	Short: "hcmd - embeddable console command interpreter",
	Long: `hcmd runs console command text: commands, quoted strings,
$variable references and ; separators. Variables double as aliases
whose values are parsed again as command text.

Commands:
  run      - parse text or a script file
  console  - interactive console
  serve    - websocket remote console
  version  - build information`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, TOML or YAML (default: $HCMD_CONFIG or ./hcmd.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup loads the configuration and installs the default logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	appConfig = cfg

	logCfg := logging.FromConfig(cfg)
	if verbose {
		logCfg.Level = "debug"
	}
	if cfg.General.LogFile != "" {
		f, err := logging.OpenLogFile(cfg.General.LogFile)
		if err != nil {
			printError(cmd, "log file not opened", err)
		} else {
			logFile = f
			logCfg.AdditionalOutputs = append(logCfg.AdditionalOutputs, f)
		}
	}

	logger = logging.NewLogger(logCfg)
	mdwlog.SetDefault(logger)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

// loadConfig reads --config, otherwise $HCMD_CONFIG or a default path.
// Without any config file the defaults are used.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		if mdwerror.HasCode(err, mdwerror.CodeNotFound) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// newInterpreter creates an interpreter writing to out with the configured
// aliases
func newInterpreter(out output.Sink) *hconsole.Interpreter {
	return hconsole.New(hconsole.Options{
		Logger:           logger,
		Output:           out,
		MaxAliasContexts: appConfig.Console.MaxAliasContexts,
		Suggest:          appConfig.Console.Suggest,
		Aliases:          appConfig.Console.Aliases,
	})
}

// newSink returns the stdout sink, colored unless disabled in config
func newSink(w io.Writer) output.Sink {
	sink := output.NewColorSink(w)
	if !appConfig.Console.Color {
		sink.DisableColor()
	}
	return sink
}

func printError(cmd *cobra.Command, msg string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %v\n", msg, err)
}
