package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gradualtype/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print gtc version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("json", false, "emit version information as JSON")
}

type versionPayload struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit,omitempty"`
	GitMessage string `json:"gitMessage,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}

	payload := versionPayload{
		Version:    stripColor(version.Version),
		GitCommit:  version.GitCommit,
		GitMessage: version.GitMessage,
		BuildDate:  version.BuildDate,
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	bold := color.New(color.Bold)
	bold.Fprintln(cmd.OutOrStdout(), "gtc "+version.Version)
	if version.GitCommit != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.GitCommit)
	}
	if version.GitMessage != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  message: %s\n", version.GitMessage)
	}
	if version.BuildDate != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  built: %s\n", version.BuildDate)
	}
	return nil
}

// stripColor removes the embedded ANSI escapes version.Version carries so
// --json output stays plain.
func stripColor(s string) string {
	out := make([]byte, 0, len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == 0x1b:
			inEscape = true
		case inEscape && s[i] == 'm':
			inEscape = false
		case !inEscape:
			out = append(out, s[i])
		}
	}
	return string(out)
}
