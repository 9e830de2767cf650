package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glyphmark/glyphmark/pkg/errors"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: MsgCheckShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(opts, "", "")
			if err != nil {
				return err
			}
			source, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			if _, err := env.prc.Process(source); err != nil {
				if offset := errors.GetOffset(err); offset >= 0 {
					return fmt.Errorf("byte %d: %w", offset, err)
				}
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), MsgCheckOK)
			return nil
		},
	}
	return cmd
}
