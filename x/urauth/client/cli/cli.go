package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sonr-io/urauth/crypto/keys"
	"github.com/sonr-io/urauth/x/urauth/types"
)

const (
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"

	flagClaim     = "claim"
	flagScheme    = "scheme"
	flagSeed      = "seed"
	flagTimestamp = "timestamp"
	flagName      = "name"
	flagSource    = "data-source"
)

// AddURAuthCmds registers the offline urauth tooling on rootCmd
func AddURAuthCmds(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().String(FlagLogLevel, zerolog.InfoLevel.String(), "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(FlagLogFormat, "plain", "log format (plain|json)")

	rootCmd.AddCommand(
		uriCmd(),
		didCmd(),
		challengeCmd(),
		proofCmd(),
	)
}

// NewLogger builds a logger from the persistent log flags
func NewLogger(cmd *cobra.Command) (log.Logger, error) {
	levelStr, err := cmd.Flags().GetString(FlagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to get log level flag: %w", err)
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}

	format, err := cmd.Flags().GetString(FlagLogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to get log format flag: %w", err)
	}

	opts := []log.Option{log.LevelOption(level)}
	switch format {
	case "json":
		opts = append(opts, log.OutputJSONOption())
	case "plain":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return log.NewLogger(os.Stderr, opts...).With(log.ModuleKey, "urauth-cli"), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}

// claimFromFlags reads --claim and, for contents, --name and --data-source
func claimFromFlags(cmd *cobra.Command) (types.ClaimType, error) {
	kindStr, err := cmd.Flags().GetString(flagClaim)
	if err != nil {
		return types.ClaimType{}, err
	}
	kind, err := types.ParseClaimKind(kindStr)
	if err != nil {
		return types.ClaimType{}, err
	}
	if kind == types.ClaimKindDomain {
		return types.DomainClaim(), nil
	}

	name, _ := cmd.Flags().GetString(flagName)
	source, _ := cmd.Flags().GetString(flagSource)
	return types.NewContentsClaim(source, name, ""), nil
}

func addClaimFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagClaim, "domain", "claim kind (domain|contents)")
	cmd.Flags().String(flagName, "", "content name for contents claims")
	cmd.Flags().String(flagSource, "", "data source for contents claims")
}

// signerFromFlags derives a deterministic signer from --scheme and --seed
func signerFromFlags(cmd *cobra.Command) (keys.Signer, error) {
	schemeStr, err := cmd.Flags().GetString(flagScheme)
	if err != nil {
		return nil, err
	}
	scheme, err := keys.ParseScheme(schemeStr)
	if err != nil {
		return nil, err
	}

	seed, err := cmd.Flags().GetString(flagSeed)
	if err != nil {
		return nil, err
	}
	if seed == "" {
		return keys.GenerateSigner(scheme)
	}
	return keys.NewSignerFromSeed(scheme, []byte(seed))
}

func addSignerFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagScheme, keys.SchemeEd25519.String(), "signature scheme (ed25519|sr25519|ecdsa)")
	cmd.Flags().String(flagSeed, "", "seed phrase; a random key is used when empty")
}
