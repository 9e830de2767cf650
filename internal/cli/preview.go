package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newPreviewCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: MsgPreviewShort,
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

			out, err := env.prc.Process(source)
			if err != nil {
				return fmt.Errorf(MsgErrRenderInput, err)
			}

			// Pretty-print only on a real terminal; piped output stays
			// plain so it can be post-processed.
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			style := "light"
			if termenv.HasDarkBackground() {
				style = "dark"
			}
			renderer, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return err
			}
			pretty, err := renderer.Render(out)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), pretty)
			return nil
		},
	}
	return cmd
}
