package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "om",
		Short:         "om: operator CLI for an Ops Manager appliance",
		Long:          "om drives a remote Ops Manager appliance: authenticate against its UAA, unlock the encrypted installation, upload stemcells and product tiles, and reconcile vm_types.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newTargetCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newUnlockCmd(app),
		newUploadCmd(app),
		newGetVMTypesCmd(app),
		newDeleteVMTypesCmd(app),
		newSetVMTypeCmd(app),
	)

	return rootCmd
}
