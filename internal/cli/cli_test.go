package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	if stdin != "" {
		root.SetIn(strings.NewReader(stdin))
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := writeFile(t, "doc.md", "{{mathbold}}Hi{{/mathbold}}")
		out, _, err := execute(t, "", "render", path)
		require.NoError(t, err)
		assert.Equal(t, "\U0001D407\U0001D422", out)
	})

	t.Run("from stdin", func(t *testing.T) {
		out, _, err := execute(t, "{{badge:circle}}A{{/badge}}", "render")
		require.NoError(t, err)
		assert.Equal(t, "Ⓐ", out)
	})

	t.Run("tag error aborts", func(t *testing.T) {
		_, _, err := execute(t, "{{mathbold}}oops", "render")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to render")
	})

	t.Run("svg target writes assets", func(t *testing.T) {
		assetsDir := filepath.Join(t.TempDir(), "img")
		out, errOut, err := execute(t, "{{ui:swatch:crimson/}}",
			"render", "--target", "svg", "--assets-dir", assetsDir)
		require.NoError(t, err)
		assert.Contains(t, out, "![")
		assert.Contains(t, errOut, "wrote")

		entries, err := os.ReadDir(assetsDir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, strings.HasPrefix(entries[0].Name(), "swatch-"))
		assert.True(t, strings.HasSuffix(entries[0].Name(), ".svg"))
	})

	t.Run("extra definitions", func(t *testing.T) {
		defs := writeFile(t, "extra.toml", `
[[separators]]
name = "tilde"
char = "~"
`)
		out, _, err := execute(t, "{{mathbold:separator=tilde}}AB{{/mathbold}}",
			"--defs", defs, "render")
		require.NoError(t, err)
		assert.Equal(t, "\U0001D400~\U0001D401", out)
	})
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean document", func(t *testing.T) {
		out, _, err := execute(t, "plain text with `{{code}}`", "check")
		require.NoError(t, err)
		assert.Equal(t, MsgCheckOK, out)
	})

	t.Run("reports offset", func(t *testing.T) {
		_, _, err := execute(t, "ab {{mathbold}}oops", "check")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "byte 3")
	})
}

func TestListCommand(t *testing.T) {
	t.Run("all kinds", func(t *testing.T) {
		out, _, err := execute(t, "", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "STYLES")
		assert.Contains(t, out, "mathbold")
		assert.Contains(t, out, "gradient")
		assert.Contains(t, out, "signature")
	})

	t.Run("inline context excludes block renderables", func(t *testing.T) {
		out, _, err := execute(t, "", "list", "--context", "inline")
		require.NoError(t, err)
		assert.Contains(t, out, "mathbold")
		assert.NotContains(t, out, "gradient")
	})

	t.Run("unknown context", func(t *testing.T) {
		_, _, err := execute(t, "", "list", "--context", "margin")
		assert.Error(t, err)
	})
}

func TestPaletteCommand(t *testing.T) {
	out, _, err := execute(t, "", "palette")
	require.NoError(t, err)
	assert.Contains(t, out, "crimson")
	assert.Contains(t, out, "#dc143c")
}

func TestSyntaxCommand(t *testing.T) {
	out, _, err := execute(t, "", "syntax")
	require.NoError(t, err)
	assert.Contains(t, out, "Template syntax")
	assert.Contains(t, out, "{{/ui}}")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "glyphmark version")
}

func TestConfigFlag(t *testing.T) {
	cfg := writeFile(t, "config.toml", `
[palette]
crimson = "ff0000"
`)
	out, _, err := execute(t, "{{ui:swatch:crimson/}}", "--config", cfg, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "ff0000")
}
