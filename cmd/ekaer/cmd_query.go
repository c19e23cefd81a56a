package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lb-conn/ekaer/domain/schema"
)

var (
	listFrom        string
	listTo          string
	listOrderNumber string
	listPlateNumber string
	listMaxRows     string
)

var queryCmd = &cobra.Command{
	Use:   "query <tcn>",
	Short: "Show a trade card by its number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := application()
		if err != nil {
			return err
		}
		card, err := app.QueryTradeCard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if card == nil {
			return fmt.Errorf("trade card %s not found", args[0])
		}
		return printXML(cmd.OutOrStdout(), tradeCardList{TradeCards: []schema.TradeCardInfo{*card}})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trade cards inserted in a time window",
	Long: `List trade cards inserted between --from and --to. The window must not
be longer than 30 days nor start in the future. Dates are accepted as
2006-01-02 or RFC 3339 timestamps.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var params schema.QueryParams
		if err := params.InsertFromDate.UnmarshalText([]byte(listFrom)); err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		if err := params.InsertToDate.UnmarshalText([]byte(listTo)); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		params.OrderNumber = listOrderNumber
		params.PlateNumber = listPlateNumber
		params.MaxRowNum = listMaxRows

		app, err := application()
		if err != nil {
			return err
		}
		cards, err := app.QueryTradeCards(cmd.Context(), params)
		if err != nil {
			return err
		}
		return printXML(cmd.OutOrStdout(), tradeCardList{TradeCards: cards})
	},
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "start of the insert window")
	listCmd.Flags().StringVar(&listTo, "to", "", "end of the insert window")
	listCmd.Flags().StringVar(&listOrderNumber, "order-number", "", "filter by order number")
	listCmd.Flags().StringVar(&listPlateNumber, "plate-number", "", "filter by vehicle plate number")
	listCmd.Flags().StringVar(&listMaxRows, "max-rows", "", "maximum number of trade cards returned (1-1000)")
	_ = listCmd.MarkFlagRequired("from")
	_ = listCmd.MarkFlagRequired("to")
}
