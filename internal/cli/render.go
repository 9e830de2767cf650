package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newRenderCmd(opts *globalOptions) *cobra.Command {
	var (
		target    string
		assetsDir string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: MsgRenderShort,
		Long:  MsgRenderLong,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := buildEnvironment(opts, target, assetsDir)
			if err != nil {
				return err
			}
			source, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out, assets, err := env.prc.ProcessWithAssets(source)
			if err != nil {
				return fmt.Errorf(MsgErrRenderInput, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			for _, asset := range assets {
				if err := writeAsset(asset.RelativePath, asset.Bytes); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), MsgAssetWritten, asset.RelativePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", MsgFlagTarget)
	cmd.Flags().StringVar(&assetsDir, "assets-dir", "", MsgFlagAssetsDir)
	return cmd
}

// readInput takes the document from the named file, or stdin when no
// file is given.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf(MsgErrReadInput, err)
	}
	return string(data), nil
}

func writeAsset(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(MsgErrWriteAsset, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf(MsgErrWriteAsset, path, err)
	}
	return nil
}
