// @title Transcription Relay API
// @version 1.0
// @description Accepts media uploads and returns transcripts from an external speech-to-text service.
// @BasePath /
package main

import (
	"transcribe-relay/cmd/relay/cmd"
)

func main() {
	cmd.Execute()
}
