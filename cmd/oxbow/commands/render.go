package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxbow-build/oxbow/pkg/codegen"
)

func newRenderCommand() *cobra.Command {
	var (
		output    string
		resources string
	)

	cmd := &cobra.Command{
		Use:   "render [manifest]",
		Short: "Render the generated config source without building",
		Long: `Render the generated configuration source for an embedding manifest
and print it, or write it to a file. No packaging script is evaluated
and no receipt is recorded.`,
		Example: `  # Print the generated source
  oxbow render

  # Write it to a file
  oxbow render app/oxbow.yaml -o embedded_config.go`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := "oxbow.yaml"
			if len(args) > 0 {
				manifestPath = args[0]
			}

			manifest, err := codegen.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			model, err := manifest.Model()
			if err != nil {
				return fmt.Errorf("invalid embedding configuration in %s: %w", manifestPath, err)
			}

			literal := codegen.Render(model)
			if output == "" {
				fmt.Print(codegen.ConfigSource(resources, literal))
				return nil
			}
			return codegen.WriteDefaultConfigSource(output, resources, literal)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&resources, "resources", "packed-resources.bin", "packed resources path referenced by the generated source")

	return cmd
}
