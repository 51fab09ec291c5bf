package hclutil_test

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
	"github.com/vk/stepconf/internal/hclutil"
)

func parseBlocks(t *testing.T, src string) hcl.Blocks {
	t.Helper()
	f, diags := hclsyntax.ParseConfig([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	content, _, diags := f.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "source", LabelNames: []string{"variant"}},
			{Type: "other"},
		},
	})
	require.False(t, diags.HasErrors(), diags.Error())
	return content.Blocks
}

func TestFindUniqueBlock(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		blocks := parseBlocks(t, "other {}\nsource \"file\" {}\n")
		got, diags := hclutil.FindUniqueBlock(blocks, "source")
		require.Empty(t, diags)
		require.NotNil(t, got)
		require.Equal(t, []string{"file"}, got.Labels)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		got, diags := hclutil.FindUniqueBlock(parseBlocks(t, "other {}\n"), "source")
		require.Nil(t, got)
		require.Empty(t, diags)
	})

	t.Run("duplicates keep the first", func(t *testing.T) {
		t.Parallel()
		blocks := parseBlocks(t, "source \"file\" {}\nsource \"url\" {}\nsource \"content\" {}\n")
		got, diags := hclutil.FindUniqueBlock(blocks, "source")
		require.Equal(t, []string{"file"}, got.Labels)
		require.Len(t, diags, 2)
		require.Equal(t, `Duplicate "source" block`, diags[0].Summary)
		require.Equal(t, 2, diags[0].Subject.Start.Line)
	})
}

func TestLabelError(t *testing.T) {
	t.Parallel()

	blocks := parseBlocks(t, "other {}\nsource \"file\" {}\n")

	d := hclutil.LabelError(blocks[1], "Bad", "detail")
	require.Equal(t, hcl.DiagError, d.Severity)
	require.Equal(t, 2, d.Subject.Start.Line)
	require.Equal(t, 8, d.Subject.Start.Column, "points at the label")

	d = hclutil.LabelError(blocks[0], "Bad", "detail")
	require.Equal(t, 1, d.Subject.Start.Line)
	require.Equal(t, 1, d.Subject.Start.Column)
}
