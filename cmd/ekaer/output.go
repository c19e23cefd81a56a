package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/lb-conn/ekaer/application/usecases"
	"github.com/lb-conn/ekaer/domain/schema"
	"github.com/lb-conn/ekaer/infrastructure/xmlcodec"
)

var printer = xmlcodec.New(xmlcodec.WithIndent("  "))

type tradeCardList struct {
	XMLName    xml.Name               `xml:"tradeCards"`
	TradeCards []schema.TradeCardInfo `xml:"tradeCard"`
}

type tradeCardInput struct {
	XMLName    xml.Name
	TradeCards []schema.TradeCard `xml:"tradeCard"`
}

type operationResults struct {
	XMLName xml.Name                          `xml:"tradeCardOperationsResults"`
	Results []schema.TradeCardOperationResult `xml:"tradeCardOperationResult"`
}

func printXML(w io.Writer, v any) error {
	data, err := printer.Encode(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// printBatch prints every item result and fails when any item failed.
func printBatch(w io.Writer, result usecases.BatchResult) error {
	all := append(append([]schema.TradeCardOperationResult(nil), result.Succeeded...), result.Failed...)
	if err := printXML(w, operationResults{Results: all}); err != nil {
		return err
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d operations failed: %w", len(result.Failed), len(all), result.FirstError())
	}
	return nil
}

// readTradeCards loads trade cards from an XML file holding either a single
// <tradeCard> or a <tradeCards> list of them.
func readTradeCards(path string) ([]schema.TradeCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trade cards: %w", err)
	}
	var root tradeCardInput
	if err := printer.Decode(data, &root); err != nil {
		return nil, err
	}
	if root.XMLName.Local == "tradeCards" {
		if len(root.TradeCards) == 0 {
			return nil, fmt.Errorf("%s holds no trade card", path)
		}
		return root.TradeCards, nil
	}

	var card schema.TradeCard
	if err := printer.Decode(data, &card); err != nil {
		return nil, err
	}
	return []schema.TradeCard{card}, nil
}
