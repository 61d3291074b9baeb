package cli

import (
	"github.com/spf13/cobra"
)

// AddDeploymentCommand adds the deployment command group to the root command.
func AddDeploymentCommand(rootCmd *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "deployment",
		Short: "Inspect metadata deployments",
		Long: `Commands that read the result of a metadata deployment.

Use 'devops deployment artifacts' to print the report for one or more
deployment ids.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	AddArtifactsCommand(cmd, global)
	rootCmd.AddCommand(cmd)
}
