package cli

import (
	"encoding/hex"

	"github.com/spf13/cobra"

	"github.com/sonr-io/urauth/crypto/keys"
)

type didInfo struct {
	DID       string `json:"did"`
	Account   string `json:"account"`
	Scheme    string `json:"scheme,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
}

func didCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "did",
		Short: "Owner DID utilities",
	}
	cmd.AddCommand(didAccountCmd(), didNewCmd())
	return cmd
}

func didAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account [did]",
		Short: "Decode the account an owner DID refers to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acc, err := keys.DefaultDIDCodec().Account(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, didInfo{DID: args[0], Account: acc.String()})
		},
	}
}

func didNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Derive an owner DID from a signing key",
		Example: `  urauth did new --scheme sr25519 --seed "correct horse"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := signerFromFlags(cmd)
			if err != nil {
				return err
			}
			acc := keys.SignerAccount(signer)
			return printJSON(cmd, didInfo{
				DID:       keys.NewOwnerDID(acc),
				Account:   acc.String(),
				Scheme:    signer.Scheme().String(),
				PublicKey: hex.EncodeToString(signer.PublicKey()),
			})
		},
	}
	addSignerFlags(cmd)
	return cmd
}
