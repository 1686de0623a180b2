package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"skill-match/internal/catalog"
	"skill-match/internal/domain/resume"
	"skill-match/internal/usecase"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract catalog skills from a plain-text resume (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

// maxResumeBytes caps a stdin read: no rune encodes to more than
// utf8.UTFMax bytes.
const maxResumeBytes = utf8.UTFMax * usecase.MaxResumeLength

func runExtract(cmd *cobra.Command, args []string) error {
	var (
		b   []byte
		err error
	)
	if args[0] == "-" {
		b, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxResumeBytes+1))
	} else {
		b, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	if len(b) > maxResumeBytes || utf8.RuneCount(b) > usecase.MaxResumeLength {
		return fmt.Errorf("resume longer than %d characters", usecase.MaxResumeLength)
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	hits := resume.NewExtractor(cat.Taxonomy()).Hits(string(b))
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(hits)
}
