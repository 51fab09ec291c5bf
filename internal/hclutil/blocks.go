// Package hclutil holds small helpers for working with HCL bodies.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock searches a slice of blocks for all blocks of a given type.
// It returns a diagnostic error for every block of that type after the
// first. If no block is found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed; the first one was defined at " + found.DefRange.String() + ".",
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}

	return found, diags
}

// LabelError is an error diagnostic pointing at the first label of block,
// or at its header when it has none.
func LabelError(block *hcl.Block, summary, detail string) *hcl.Diagnostic {
	subject := block.DefRange
	if len(block.LabelRanges) > 0 {
		subject = block.LabelRanges[0]
	}
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  &subject,
	}
}
