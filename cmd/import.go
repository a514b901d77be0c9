package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/hance08/weka/internal/config"
	"github.com/hance08/weka/internal/constants"
	"github.com/hance08/weka/internal/imports"
	"github.com/hance08/weka/internal/service"
)

// column aliases accepted by --columns, keyed lower-case
var columnNames = map[string]imports.PropType{
	"none":        imports.PropNone,
	"id":          imports.PropUniqueID,
	"date":        imports.PropDate,
	"num":         imports.PropNum,
	"description": imports.PropDescription,
	"notes":       imports.PropNotes,
	"commodity":   imports.PropCommodity,
	"void":        imports.PropVoidReason,
	"action":      imports.PropAction,
	"account":     imports.PropAccount,
	"amount":      imports.PropAmount,
	"amount-neg":  imports.PropAmountNeg,
	"price":       imports.PropPrice,
	"memo":        imports.PropMemo,
	"rec":         imports.PropRecState,
	"rec-date":    imports.PropRecDate,
	"taction":     imports.PropTAction,
	"taccount":    imports.PropTAccount,
	"tamount":     imports.PropTAmount,
	"tamount-neg": imports.PropTAmountNeg,
	"tmemo":       imports.PropTMemo,
	"trec":        imports.PropTRecState,
	"trec-date":   imports.PropTRecDate,
}

func selectorHelp(names []string) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%d=%s", i, name)
	}
	return strings.Join(parts, " ")
}

func parseColumns(spec string) ([]imports.PropType, error) {
	var mapping []imports.PropType
	for _, name := range strings.Split(spec, ",") {
		prop, ok := columnNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown column type %q", name)
		}
		mapping = append(mapping, prop)
	}
	return mapping, nil
}

func NewImportCmd(svc *service.Service, cfg *config.Config) *cobra.Command {
	var (
		columns    string
		currency   string
		account    string
		aliases    []string
		dateFmt    int
		currFmt    int
		multiSplit bool
		skipRows   int
	)

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import transactions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping, err := parseColumns(columns)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer file.Close()

			reader := csv.NewReader(file)
			reader.FieldsPerRecord = -1
			rows, err := reader.ReadAll()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if skipRows > 0 && skipRows < len(rows) {
				rows = rows[skipRows:]
			} else if skipRows >= len(rows) {
				rows = nil
			}

			aliasMap := make(map[string]string)
			for _, a := range aliases {
				src, dst, ok := strings.Cut(a, "=")
				if !ok {
					return fmt.Errorf("invalid alias %q (want statement-name=ledger-account)", a)
				}
				aliasMap[src] = dst
			}

			if currency == "" {
				currency = cfg.Defaults.Currency
			}

			opts := service.ImportOptions{
				DateFormat:       dateFmt,
				CurrencyFormat:   currFmt,
				MultiSplit:       multiSplit,
				FallbackCurrency: currency,
				BaseAccount:      account,
				Aliases:          aliasMap,
			}

			result, err := svc.Import.ImportRows(rows, mapping, opts)
			if err != nil {
				return err
			}

			printImportResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&columns, "columns", "", "comma separated column types, e.g. date,description,account,amount")
	cmd.Flags().StringVar(&currency, "currency", "", "fallback transaction currency (default from config)")
	cmd.Flags().StringVar(&account, "account", "", "base account when no account column is mapped")
	cmd.Flags().StringArrayVar(&aliases, "alias", nil, "map a statement account name to a ledger account (src=dst, repeatable)")
	cmd.Flags().IntVar(&dateFmt, "date-format", cfg.Import.DateFormat,
		fmt.Sprintf("date format selector (%s)", selectorHelp(constants.DateFormats)))
	cmd.Flags().IntVar(&currFmt, "currency-format", cfg.Import.CurrencyFormat,
		fmt.Sprintf("currency format selector (%s)", selectorHelp(constants.CurrencyFormats)))
	cmd.Flags().BoolVar(&multiSplit, "multi-split", false, "treat consecutive matching rows as splits of one transaction")
	cmd.Flags().IntVar(&skipRows, "skip", 0, "number of header rows to skip")
	_ = cmd.MarkFlagRequired("columns")

	return cmd
}

func printImportResult(result *service.ImportResult) {
	pterm.Info.Printfln("Import run %s: %d row(s) read", result.RunID, result.RowsRead)

	if len(result.TransactionIDs) > 0 {
		pterm.Success.Printfln("Imported %d transaction(s)", len(result.TransactionIDs))
	}

	for _, d := range result.Deferred {
		detail := ""
		if d.TAccount != "" {
			detail = fmt.Sprintf(" (transfer account %s)", d.TAccount)
		}
		pterm.Warning.Printfln("Row %d %q needs a balancing split%s; add a price or transfer amount and re-run",
			d.Row, d.Description, detail)
	}

	for _, f := range result.Failed {
		pterm.Error.Printfln("Row %d not imported:", f.Row)
		for _, msg := range f.Messages {
			pterm.Error.Printfln("  %s", msg)
		}
	}

	if len(result.Deferred) == 0 && len(result.Failed) == 0 && len(result.TransactionIDs) == result.RowsRead {
		pterm.Success.Println("All rows imported")
	}
}
