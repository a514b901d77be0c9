package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/service"
	"github.com/hance08/weka/internal/store"
)

func NewTxListCmd(svc *service.Service, repo store.Repository) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List imported transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := repo.GetAllTransactions(limit)
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"ID", "Date", "Num", "Description", "Currency", "Void"}}
			for _, tx := range txs {
				voided := ""
				if tx.VoidReason != "" {
					voided = "voided: " + tx.VoidReason
				}
				tableData = append(tableData, []string{
					pterm.Sprintf("%d", tx.ID),
					time.Unix(tx.Timestamp, 0).UTC().Format(constants.DateFormat),
					tx.Num,
					tx.Description,
					tx.Currency,
					voided,
				})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
				return err
			}
			pterm.Info.Printf("Total: %d transactions\n", len(txs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum number of transactions to show")
	return cmd
}
