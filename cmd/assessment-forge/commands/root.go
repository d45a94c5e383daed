// Package commands implements the assessment-forge CLI's subcommands
// using cobra.
package commands

import (
	"errors"

	"assessment-forge/internal/domain"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the root command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "assessment-forge",
		Short: "Generate Bloom-leveled assessments from a teacher's intent",
		Long: `assessment-forge turns a teacher's assessment request into a
rigor-calibrated, guardrail-aware, Bloom-ordered assessment.

Examples:
  assessment-forge serve
  assessment-forge generate --topic "Photosynthesis" --grade 7 --type quiz`,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newGenerateCmd())

	return root
}

// ExitCodeFor maps a returned error to the process exit code from
// spec.md §6's closed taxonomy, defaulting to 1 for anything else.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var pipelineErr *domain.PipelineError
	if errors.As(err, &pipelineErr) {
		return pipelineErr.Kind.ExitCode()
	}
	return 1
}
