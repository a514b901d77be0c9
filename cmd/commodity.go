package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/service"
)

func NewCommodityCmd(svc *service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commodity",
		Short: "Manage commodities (currencies, stocks, funds)",
	}

	var (
		namespace string
		fullName  string
		fraction  int64
	)

	addCmd := &cobra.Command{
		Use:   "add <mnemonic>",
		Short: "Register a commodity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := svc.Account.CreateCommodity(namespace, args[0], fullName, fraction)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Registered commodity %s (id %d)", args[0], id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&namespace, "namespace", "", "commodity namespace (empty means CURRENCY)")
	addCmd.Flags().StringVar(&fullName, "name", "", "full display name")
	addCmd.Flags().Int64Var(&fraction, "fraction", 100, "smallest tradable fraction")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List commodities",
		RunE: func(cmd *cobra.Command, args []string) error {
			commodities, err := svc.Account.GetAllCommodities()
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"Namespace", "Mnemonic", "Name"}}
			for _, c := range commodities {
				tableData = append(tableData, []string{c.Namespace, c.Mnemonic, c.FullName})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	return cmd
}
