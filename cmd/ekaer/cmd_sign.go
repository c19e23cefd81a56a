package main

import (
	"encoding/xml"

	"github.com/spf13/cobra"

	"github.com/lb-conn/ekaer/domain/schema"
	"github.com/lb-conn/ekaer/infrastructure/ekaer"
	"github.com/lb-conn/ekaer/setup"
)

type signedEnvelope struct {
	XMLName xml.Name `xml:"envelope"`
	schema.BasicRequest
}

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Print a freshly signed header and user block",
	Long: `Print the header and user block the client would attach to its next
request, without contacting the service. Useful to compare signatures with
another implementation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		creds, err := setup.NewCredentials(cfg)
		if err != nil {
			return err
		}
		signer, err := ekaer.NewSigner(creds)
		if err != nil {
			return err
		}
		header, user, err := signer.Envelope()
		if err != nil {
			return err
		}
		var env signedEnvelope
		env.SetEnvelope(header, user)
		return printXML(cmd.OutOrStdout(), env)
	},
}
