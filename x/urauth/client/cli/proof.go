package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/types"
)

func proofCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Sign ownership request and claim proofs",
	}
	cmd.AddCommand(proofRequestCmd())
	return cmd
}

func proofRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request [uri] [owner-did] [nonce]",
		Short: "Sign (uri, owner did, nonce) for a request or claim",
		Long: `Sign the proof carried by request and claim messages. The nonce is the
signer's last used nonce plus one.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := signerFromFlags(cmd)
			if err != nil {
				return err
			}
			nonce, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return err
			}

			sig, err := signer.Sign(types.RequestSigningPayload(args[0], args[1], nonce))
			if err != nil {
				return err
			}
			return printJSON(cmd, types.SignedProof{Signer: keys.MultiSignerOf(signer), Signature: sig})
		},
	}
	addSignerFlags(cmd)
	return cmd
}
