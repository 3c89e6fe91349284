package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	vmtypesrender "github.com/bnema/opsman-cli/internal/adapters/render/vmtypes"
	"github.com/bnema/opsman-cli/internal/application"
	"github.com/bnema/opsman-cli/internal/domain"
)

func newGetVMTypesCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get-vm-types",
		Short: "List the appliance's vm types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			collection, err := application.NewVMTypes(app.applianceClient(settings)).List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				encoded, err := json.MarshalIndent(map[string]domain.VMTypeCollection{"vm_types": collection}, "", "  ")
				if err != nil {
					return fmt.Errorf("encode vm types: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
				return nil
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), vmtypesrender.Render(collection))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newDeleteVMTypesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-vm-types",
		Short: "Delete all vm types from the appliance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			if err := application.NewVMTypes(app.applianceClient(settings)).Clear(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Deleted all vm types.")
			return nil
		},
	}
}

func newSetVMTypeCmd(app *app) *cobra.Command {
	var (
		name string
		cpu  int
		ram  int
		disk int
	)

	cmd := &cobra.Command{
		Use:   "set-vm-type",
		Short: "Create or update a vm type by name",
		Long:  "Fetches the appliance's vm_types, merges the described type in (update in place when the name exists, append otherwise), and writes the whole collection back. The API only understands full replacement.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := app.settings()
			if err != nil {
				return err
			}

			svc := application.NewVMTypes(app.applianceClient(settings))
			collection, err := svc.Upsert(cmd.Context(), domain.VMType{
				Name:          name,
				CPU:           cpu,
				RAM:           ram,
				EphemeralDisk: disk,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set vm type %q (%d of %d).\n", name, positionOf(collection, name), len(collection))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "VM type name (unique key)")
	cmd.Flags().IntVar(&cpu, "cpu", 0, "CPU count")
	cmd.Flags().IntVar(&ram, "ram", 0, "RAM in MB")
	cmd.Flags().IntVar(&disk, "disk", 0, "Ephemeral disk in MB")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("cpu")
	_ = cmd.MarkFlagRequired("ram")
	_ = cmd.MarkFlagRequired("disk")

	return cmd
}

func positionOf(collection domain.VMTypeCollection, name string) int {
	for i, v := range collection {
		if v.Name == name {
			return i + 1
		}
	}
	return 0
}
