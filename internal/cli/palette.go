package cli

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/glyphmark/glyphmark/pkg/palette"
)

func newPaletteCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: MsgPaletteShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(opts, "", "")
			if err != nil {
				return err
			}

			pal := palette.New(env.reg.Palette())
			if len(env.cfg.Palette) > 0 {
				if err := pal.Extend(env.cfg.Palette); err != nil {
					return err
				}
			}

			colors := pal.Names()
			names := make([]string, 0, len(colors))
			for name := range colors {
				names = append(names, name)
			}
			sort.Strings(names)

			data := pterm.TableData{{"NAME", "HEX"}}
			for _, name := range names {
				data = append(data, []string{name, "#" + colors[name]})
			}
			return pterm.DefaultTable.
				WithHasHeader().
				WithWriter(cmd.OutOrStdout()).
				WithData(data).
				Render()
		},
	}
	return cmd
}
