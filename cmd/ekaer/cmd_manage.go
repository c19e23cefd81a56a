package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lb-conn/ekaer/application/usecases"
)

var (
	cardFile     string
	deleteReason string
)

var createCmd = &cobra.Command{
	Use:   "create --file cards.xml",
	Short: "Create trade cards",
	Long: `Create the trade cards read from --file. The file holds a single
<tradeCard> element or a <tradeCards> list. Every card is validated locally
before anything is sent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := readTradeCards(cardFile)
		if err != nil {
			return err
		}
		app, err := application()
		if err != nil {
			return err
		}
		result, err := app.CreateTradeCards(cmd.Context(), cards)
		if err != nil {
			return err
		}
		return printBatch(cmd.OutOrStdout(), result)
	},
}

var modifyCmd = &cobra.Command{
	Use:   "modify --file cards.xml",
	Short: "Modify trade cards",
	Long:  `Modify the trade cards read from --file. Every card must carry its tcn.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := readTradeCards(cardFile)
		if err != nil {
			return err
		}
		app, err := application()
		if err != nil {
			return err
		}
		result, err := app.ModifyTradeCards(cmd.Context(), cards)
		if err != nil {
			return err
		}
		return printBatch(cmd.OutOrStdout(), result)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate --file cards.xml",
	Short: "Validate trade cards on the service without storing them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := readTradeCards(cardFile)
		if err != nil {
			return err
		}
		app, err := application()
		if err != nil {
			return err
		}
		results, err := app.ValidateTradeCards(cmd.Context(), cards)
		if err != nil {
			return err
		}
		return printXML(cmd.OutOrStdout(), operationResults{Results: results})
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize <tcn>...",
	Short: "Finalize trade cards",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := application()
		if err != nil {
			return err
		}
		result, err := app.FinalizeTradeCards(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printBatch(cmd.OutOrStdout(), result)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <tcn>...",
	Short: "Delete trade cards",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requests := make([]usecases.DeleteRequest, 0, len(args))
		for _, tcn := range args {
			requests = append(requests, usecases.DeleteRequest{Tcn: tcn, Reason: deleteReason})
		}
		app, err := application()
		if err != nil {
			return err
		}
		results, err := app.DeleteTradeCards(cmd.Context(), requests)
		if err != nil {
			return err
		}
		failed := 0
		for _, item := range results {
			if item.Result.IsError() {
				failed++
			}
		}
		if err := printXML(cmd.OutOrStdout(), operationResults{Results: results}); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d deletions failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{createCmd, modifyCmd, validateCmd} {
		cmd.Flags().StringVarP(&cardFile, "file", "f", "", "XML file with the trade cards")
		_ = cmd.MarkFlagRequired("file")
	}
	deleteCmd.Flags().StringVar(&deleteReason, "reason", "", "reason of the deletion")
}
