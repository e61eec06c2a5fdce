// arch-assist: a lightweight Arch helper that turns short free-text
// requests into vetted system-administration commands, with an LLM fallback
// for prompts the builtin rules cannot answer.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"archassist/internal/assist"
	"archassist/internal/config"
)

const version = "0.3.0"

var (
	// Global flags
	dryRun     bool
	auto       bool
	apply      bool
	offline    bool
	yes        bool
	preferParu bool
	noSudo     bool
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "archassist",
	Short: "Lightweight Arch helper with AI-ish shortcuts",
	Long: `archassist translates short natural-language requests ("fix sound",
"install spotify", "open word") into a safety-checked sequence of pacman /
paru / systemctl / nmcli commands, optionally executing them.

Prompts with no builtin rule fall back to a remote LLM; its output goes
through the same validator and package-origin resolution as everything else.
Nothing runs without --auto and an explicit confirmation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = logger.With(zap.String("run_id", uuid.NewString()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// aiCmd interprets a natural language prompt into real commands
var aiCmd = &cobra.Command{
	Use:   "ai [prompt]",
	Short: "Interpret a natural language prompt into real commands",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt := strings.Join(args, " ")
		pipeline, cfg, err := buildPipeline()
		if err != nil {
			return err
		}
		return pipeline.HandlePrompt(cmd.Context(), prompt, cfg)
	},
}

// runCmd runs a single command after safety validation
var runCmd = &cobra.Command{
	Use:   "run [command]",
	Short: "Run a single command after safety validation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := strings.Join(args, " ")
		pipeline, cfg, err := buildPipeline()
		if err != nil {
			return err
		}
		return pipeline.RunSingle(command, cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the archassist version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("archassist %s\n", version)
	},
}

// buildPipeline loads the optional config file, merges it under the flags,
// and wires the pipeline for this invocation.
func buildPipeline() (*assist.Pipeline, config.ExecConfig, error) {
	fileCfg, err := config.LoadFile()
	if err != nil {
		return nil, config.ExecConfig{}, fmt.Errorf("config file: %w", err)
	}

	cfg := config.ExecConfig{
		DryRun:     dryRun,
		Auto:       auto || apply,
		Offline:    offline,
		Yes:        yes || fileCfg.Defaults.Yes,
		PreferParu: preferParu || fileCfg.Defaults.PreferParu,
		NoSudo:     noSudo || fileCfg.Defaults.NoSudo,
		Verbose:    verbose,
	}

	pipeline := assist.New(assist.Options{
		Logger:  logger,
		APIKey:  config.APIKey(),
		Model:   config.Model(fileCfg),
		BaseURL: fileCfg.LLM.BaseURL,
	})
	return pipeline, cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "only print the commands that would run")
	rootCmd.PersistentFlags().BoolVar(&auto, "auto", false, "auto-run suggestions instead of only printing them")
	rootCmd.PersistentFlags().BoolVar(&apply, "apply", false, "alias for --auto")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "require offline-safe commands (block pacman/paru downloads)")
	rootCmd.PersistentFlags().BoolVar(&yes, "yes", false, "append --noconfirm to pacman/paru actions and skip confirmation")
	rootCmd.PersistentFlags().BoolVar(&preferParu, "prefer-paru", false, "prefer paru for installs even when a -bin package is not specified")
	rootCmd.PersistentFlags().BoolVar(&noSudo, "no-sudo", false, "avoid sudo when using pacman")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log exit codes and command outcomes")

	rootCmd.AddCommand(aiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
