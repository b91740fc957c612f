package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxbow-build/oxbow/pkg/dialect"
)

func newEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <script>",
		Short: "Evaluate a packaging script standalone",
		Long: `Evaluate a Starlark packaging script with the oxbow dialect and
report the resulting frozen build context. Useful for checking a script
before wiring it into a manifest.`,
		Example: `  oxbow eval packaging.star`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}

			evaluator := dialect.NewEvaluator(logger.NewComponentLogger("dialect").Zerolog())
			buildCtx, err := evaluator.EvalFile(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("script evaluated: %s\n", buildCtx.String())
			for i, signer := range buildCtx.Signers() {
				fmt.Printf("  signer %d: %s\n", i, signer.String())
			}
			return nil
		},
	}

	return cmd
}
