package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"transcribe-relay/cmd/relay/cmd/serve"
	"transcribe-relay/cmd/relay/cmd/shared"
	"transcribe-relay/cmd/relay/cmd/transcribe"
	"transcribe-relay/cmd/relay/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "HTTP relay that turns uploaded media into transcripts",
	Long: `relay accepts audio or video uploads over HTTP, forwards them to an external
speech-to-text provider (AssemblyAI by default, OpenAI or ElevenLabs optionally)
and returns the transcript as JSON.

Configuration is read from .env, an optional relay.yaml and environment variables.`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&shared.ConfigPath, "config", "c", "", "config file (default is $CONFIG_FILE or ./relay.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&shared.Verbose, "verbose", "V", false, "verbose output")
}
