package transcribe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"transcribe-relay/cmd/relay/cmd/shared"
	"transcribe-relay/internal/app"
	"transcribe-relay/internal/app/progress"
)

var (
	jsonOutput bool
	noProgress bool
)

func init() {
	Cmd.Flags().BoolVar(&jsonOutput, "json", false, `print {"transcript": "..."} instead of plain text`)
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress spinner")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe a single local file and print the transcript",
	Long: `Transcribe a single local file through the same pipeline the HTTP service uses
and print the transcript to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := shared.Bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer file.Close()

		service, err := app.InitializeTranscriptionService(cfg, logger)
		if err != nil {
			return err
		}

		spinner := progress.StartSpinner(progress.Config{
			Enabled: !noProgress && progress.ShouldShowProgress(false),
			Writer:  cmd.ErrOrStderr(),
		}, "Transcribing "+filepath.Base(args[0]))

		response, err := service.Transcribe(cmd.Context(), file, filepath.Base(args[0]))
		if err != nil {
			spinner.Fail()
			return err
		}
		spinner.Done()

		out := cmd.OutOrStdout()
		if jsonOutput {
			return json.NewEncoder(out).Encode(response)
		}
		_, err = fmt.Fprintln(out, response.Transcript)
		return err
	},
}
