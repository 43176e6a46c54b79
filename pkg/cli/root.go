// Package cli provides the command-line interface for Gamekeeper
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gamekeeper/gamekeeper/pkg/config"
	"github.com/gamekeeper/gamekeeper/pkg/types"
)

var (
	cfgFile   string
	verbosity string
	version   string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gamekeeper",
	Short: "Harvest game directories and batch-build what they contain",
	Long: `🎮 Gamekeeper - batch directory harvesting and build orchestration

Gamekeeper scans a source tree for directories whose name contains a
pattern (default "game"), copies each into a fresh layout under a
stripped name, records a metadata manifest, and compiles every build
source file it finds in the new layout.`,

	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("🎮 Gamekeeper v%s\n", version)
			return
		}
		// If no subcommand, show help
		cmd.Help()
	},
}

// Execute runs the CLI
func Execute(v string) error {
	version = v

	// Initialize the root command explicitly (avoiding init())
	initializeRootCommand()

	return rootCmd.Execute()
}

// initializeRootCommand sets up the root command and its flags.
// This replaces the init() function to make initialization explicit and testable.
func initializeRootCommand() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: gamekeeper.config.json)")
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")

	rootCmd.Flags().Bool("version", false, "Print version information and quit")

	// Add subcommands
	rootCmd.AddCommand(newHarvestCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("gamekeeper.config")
		viper.SetConfigType("json")
	}

	// Read in environment variables
	viper.SetEnvPrefix("GAMEKEEPER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbosity == "debug" {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultFileName
}

// loadConfig loads the config file (or defaults) and applies viper
// overrides from the environment
func loadConfig() (*types.GamekeeperConfig, error) {
	manager := config.NewManager()
	cfg, err := manager.LoadOrDefault(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if pattern := viper.GetString("pattern"); pattern != "" {
		cfg.Pattern = pattern
	}
	if ext := viper.GetString("sourceExtension"); ext != "" {
		cfg.SourceExtension = ext
	}
	if cmd := viper.GetStringSlice("buildCommand"); len(cmd) > 0 {
		cfg.BuildCommand = cmd
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Helper functions

func printSuccess(message string) {
	fmt.Printf("🎮 %s %s\n", color.GreenString("[Gamekeeper]"), message)
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "🎮 %s %s\n", color.RedString("[Gamekeeper]"), message)
}

func printInfo(message string) {
	fmt.Printf("🎮 %s %s\n", color.CyanString("[Gamekeeper]"), message)
}
