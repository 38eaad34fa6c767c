package cli

import (
	"github.com/spf13/cobra"

	"github.com/sonr-io/urauth/x/urauth/types"
)

type parsedURI struct {
	Part      types.URIPart `json:"part"`
	Canonical string        `json:"canonical"`
	IsRoot    bool          `json:"is_root"`
	Root      string        `json:"root"`
}

func uriCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uri",
		Short: "Inspect how uris are parsed and resolved",
	}
	cmd.AddCommand(uriParseCmd(), uriParentsCmd())
	return cmd
}

func uriParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [uri]",
		Short: "Parse a uri into its ownership components",
		Example: `  urauth uri parse https://www.example.com/blog
  urauth uri parse ur://file/cid --claim contents --name report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := claimFromFlags(cmd)
			if err != nil {
				return err
			}
			part, err := types.ParseURI(args[0], claim)
			if err != nil {
				return err
			}
			return printJSON(cmd, parsedURI{
				Part:      part,
				Canonical: part.String(),
				IsRoot:    types.IsRoot(part, claim),
				Root:      types.RootURI(part, claim),
			})
		},
	}
	addClaimFlags(cmd)
	return cmd
}

func uriParentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parents [uri]",
		Short: "List the ancestors of a uri from nearest to farthest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claim, err := claimFromFlags(cmd)
			if err != nil {
				return err
			}
			parents, err := types.ParentURIs(args[0], claim)
			if err != nil {
				return err
			}
			return printJSON(cmd, parents)
		},
	}
	addClaimFlags(cmd)
	return cmd
}
