package cli

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/types"
)

func challengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Build and inspect challenge envelopes",
	}
	cmd.AddCommand(challengeSignCmd(), challengeDigestCmd())
	return cmd
}

func challengeSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [uri] [challenge-hex]",
		Short: "Sign the envelope to publish at a claimed uri",
		Long: `Sign the challenge envelope an owner publishes at the claimed uri.
Oracle members fetch it and relay it on chain unchanged, so the printed json
must be served byte for byte.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := NewLogger(cmd)
			if err != nil {
				return err
			}
			signer, err := signerFromFlags(cmd)
			if err != nil {
				return err
			}

			challenge, err := hex.DecodeString(strings.TrimPrefix(args[1], "0x"))
			if err != nil {
				return fmt.Errorf("invalid challenge: %w", err)
			}
			if len(challenge) != types.ChallengeLength {
				return fmt.Errorf("challenge must be %d bytes, got %d", types.ChallengeLength, len(challenge))
			}

			ts, err := cmd.Flags().GetString(flagTimestamp)
			if err != nil {
				return err
			}
			if ts == "" {
				ts = time.Now().UTC().Format(time.RFC3339)
			}

			did := keys.NewOwnerDID(keys.SignerAccount(signer))
			env, err := types.NewChallengeEnvelope(args[0], did, challenge, ts, signer)
			if err != nil {
				return err
			}
			bz, err := env.Marshal()
			if err != nil {
				return err
			}

			logger.Debug("signed challenge envelope", "uri", args[0], "did", did, "scheme", signer.Scheme().String())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	addSignerFlags(cmd)
	cmd.Flags().String(flagTimestamp, "", "envelope timestamp; now in RFC3339 when empty")
	return cmd
}

func challengeDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest [envelope-json]",
		Short: "Print the digest oracle members vote on for an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := types.ParseChallengeEnvelope([]byte(args[0])); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(types.SubmissionDigest([]byte(args[0]))))
			return err
		},
	}
}
