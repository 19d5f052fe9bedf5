// Package commands provides CLI commands for vetchat.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	modelFlag string
	themeFlag string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vetchat",
	Short: "Dr. Damyar, a veterinary assistant chat for the terminal",
	Long: `vetchat opens a chat with Dr. Damyar, a senior veterinary specialist
persona backed by a Gemini model. Describe the animal's problem in text,
attach a photo or record a voice note, and the doctor replies in Persian.

The API key is read from GEMINI_API_KEY (or API_KEY), optionally loaded
from a .env file in the working directory or ~/.vetchat.

Examples:
  vetchat                               Start the chat
  vetchat ask "گوسفندم لنگ می‌زند"         Ask a single question
  vetchat ask -i cow.jpg "این زخم چیست؟"  Ask about a photo
  vetchat config                        Edit settings`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "vetchat %s (built %s)\n", Version, BuildTime)
			return nil
		}
		return runChat(cmd.Context(), defaultDeps)
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Model to use (e.g., gemini-2.5-flash)")
	rootCmd.PersistentFlags().StringVarP(&themeFlag, "theme", "t", "", "TUI color theme (e.g., meadow, nord)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(configCmd)
}
