package cmd

import (
	"fmt"
	"os"

	"github.com/bimmerbailey/onediff/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "onediff [flags] [file]",
	Short: "Group log lines that differ by a single word",
	Long: `onediff reads a log file and groups the lines that are identical except
for exactly one word, printing each group with the words seen at the
position that changes.

A leading "DD-MM-YYYY HH:MM:SS " timestamp is ignored when comparing lines
but kept in the output. Without a file argument onediff does nothing.

Examples:
  onediff /var/log/app.log
  onediff --format json /var/log/app.log
  onediff --min-sentences 2 "logs/*.log"
  onediff explain /var/log/app.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.onediff.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Int("min-sentences", 1, "hide groups with fewer lines (2 hides lines that matched nothing)")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	_ = viper.BindPFlag("report.min_sentences", rootCmd.PersistentFlags().Lookup("min-sentences"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".onediff")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ONEDIFF")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("no_color", false)
	viper.SetDefault("timestamp_prefixes", []string{})
	viper.SetDefault("report.min_sentences", 1)
	viper.SetDefault("llm.provider", "ollama")
	viper.SetDefault("llm.temperature", 0)
	viper.SetDefault("llm.max_tokens", 200)
	viper.SetDefault("llm.redact", true)
	viper.SetDefault("llm.redact_patterns", []string{})
	viper.SetDefault("llm.ollama.host", "http://localhost:11434")
	viper.SetDefault("llm.ollama.model", "llama3.2")

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	groups, err := groupInput(args[0], cfg, logger)
	if err != nil {
		return err
	}

	writer := output.New(cmd.OutOrStdout(), output.ParseFormat(cfg.Format))
	return writer.WriteGroups(groups, reportOptions(cfg))
}
