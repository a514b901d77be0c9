package cmd

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/service"
	"github.com/hance08/weka/internal/store"
)

func NewPriceCmd(svc *service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Manage the price history",
	}

	var (
		commodityNS string
		currencyNS  string
		date        string
	)

	addCmd := &cobra.Command{
		Use:   "add <commodity> <currency> <value>",
		Short: "Record a price (value units of currency per unit of commodity)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid price value %q: %w", args[2], err)
			}

			ts := time.Now()
			if date != "" {
				ts, err = time.Parse(constants.DateFormat, date)
				if err != nil {
					return fmt.Errorf("invalid date %q (want %s): %w", date, constants.DateFormat, err)
				}
			}

			id, err := svc.Account.AddPrice(store.Price{
				CommodityNS:       commodityNS,
				CommodityMnemonic: args[0],
				CurrencyNS:        currencyNS,
				CurrencyMnemonic:  args[1],
				Value:             value.String(),
				Timestamp:         ts.Unix(),
			})
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Recorded price %s/%s = %s (id %d)", args[0], args[1], value.String(), id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&commodityNS, "commodity-namespace", "", "commodity namespace (empty means CURRENCY)")
	addCmd.Flags().StringVar(&currencyNS, "currency-namespace", "", "currency namespace (empty means CURRENCY)")
	addCmd.Flags().StringVar(&date, "date", "", "price date (2006-01-02, default today)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			prices, err := svc.Account.GetAllPrices()
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"Date", "Commodity", "Currency", "Value"}}
			for _, p := range prices {
				tableData = append(tableData, []string{
					time.Unix(p.Timestamp, 0).UTC().Format(constants.DateFormat),
					p.CommodityNS + "::" + p.CommodityMnemonic,
					p.CurrencyNS + "::" + p.CurrencyMnemonic,
					p.Value,
				})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
		},
	}

	cmd.AddCommand(addCmd)
	cmd.AddCommand(listCmd)
	return cmd
}
