package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/config"
	"github.com/hance08/weka/internal/service"
)

func NewAccountCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage ledger accounts",
	}

	var (
		accType   string
		commodity string
		desc      string
	)

	createCmd := &cobra.Command{
		Use:   "create <full:name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if commodity == "" {
				commodity = cfg.Defaults.Currency
			}
			id, err := svc.Account.CreateAccount(args[0], accType, commodity, desc)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Created account %s (id %d)", args[0], id)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&accType, "type", "t", "A", "account type (A, L, C, R, E)")
	createCmd.Flags().StringVar(&commodity, "commodity", "", "commodity (currency mnemonic or NS::MNEMONIC)")
	createCmd.Flags().StringVarP(&desc, "description", "d", "", "account description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := svc.Account.GetAllAccounts()
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"Name", "Type", "Commodity"}}
			for _, acc := range accounts {
				tableData = append(tableData, []string{
					acc.Name, acc.Type, acc.CommodityNS + "::" + acc.CommodityMnemonic,
				})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
				return err
			}
			pterm.Info.Printf("Total: %d accounts\n", len(accounts))
			return nil
		},
	}

	cmd.AddCommand(createCmd)
	cmd.AddCommand(listCmd)
	return cmd
}
