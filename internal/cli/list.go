package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/glyphmark/glyphmark/pkg/errors"
	"github.com/glyphmark/glyphmark/pkg/registry"
)

var (
	kindHeaderStyle = lipgloss.NewStyle().Bold(true)
	nameStyle       = lipgloss.NewStyle().PaddingLeft(2)
)

// listKinds fixes the display order.
var listKinds = []registry.Kind{
	registry.KindStyle,
	registry.KindFrame,
	registry.KindBadge,
	registry.KindSeparator,
	registry.KindComponent,
	registry.KindPartial,
}

func newListCmd(opts *globalOptions) *cobra.Command {
	var contextName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(opts, "", "")
			if err != nil {
				return err
			}

			var usable map[string]bool
			if contextName != "" {
				ctx, ok := registry.ParseContext(contextName)
				if !ok {
					return errors.Newf(errors.ErrInvalidInput, "unknown context %q", contextName)
				}
				usable = make(map[string]bool)
				for _, name := range env.reg.ListForContext(ctx) {
					usable[name] = true
				}
			}

			out := cmd.OutOrStdout()
			for _, kind := range listKinds {
				names := env.reg.ListKind(kind)
				if usable != nil {
					var kept []string
					for _, n := range names {
						if usable[n] {
							kept = append(kept, n)
						}
					}
					names = kept
				}
				if len(names) == 0 {
					continue
				}
				fmt.Fprintln(out, kindHeaderStyle.Render(strings.ToUpper(string(kind))+"S"))
				for _, n := range names {
					fmt.Fprintln(out, nameStyle.Render(n))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contextName, "context", "", MsgFlagContext)
	return cmd
}
