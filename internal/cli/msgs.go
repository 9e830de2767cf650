package cli

// User-facing strings live here so commands stay focused on wiring.
const (
	MsgRootShort = "Expand template markup into styled markdown"
	MsgRootLong  = `glyphmark turns {{tag}} markup embedded in text into expanded output:
Unicode-styled letters, decorative frames, character badges, shields.io
badges, and SVG assets. Code spans (inline and fenced) are left alone.`

	MsgRenderShort  = "Render a document to stdout"
	MsgRenderLong   = "Render reads a document from a file or stdin, expands every tag, and writes the result to stdout. File assets produced by the svg target are written under the assets directory."
	MsgPreviewShort = "Render a document and display it in the terminal"
	MsgListShort    = "List available styles, frames, badges, separators and components"
	MsgCheckShort   = "Check a document for tag errors without producing output"
	MsgPaletteShort = "Show the effective color palette"
	MsgSyntaxShort  = "Show the template syntax reference"
	MsgVersionShort = "Print version information"

	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig    = "Config file (default is $XDG_CONFIG_HOME/glyphmark/config.toml)"
	MsgFlagDefs      = "Extra definitions file (TOML or YAML)"
	MsgFlagTarget    = "Render target: markdown or svg"
	MsgFlagAssetsDir = "Directory file assets are written to"
	MsgFlagContext   = "Only list renderables usable in this context (inline, block, chrome)"

	MsgCheckOK        = "ok: no tag errors\n"
	MsgAssetWritten   = "wrote %s\n"
	MsgErrReadInput   = "failed to read input: %w"
	MsgErrWriteAsset  = "failed to write asset %s: %w"
	MsgErrRenderInput = "failed to render: %w"
)
