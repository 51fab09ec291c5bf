package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Definition files are data, not programs: expressions are evaluated with a
// nil EvalContext, so only literals are accepted.

// attrString evaluates attr as a string. Numbers and bools are converted.
func attrString(attr *hcl.Attribute) (string, bool, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", false, diags
	}
	s, ok, err := ctyString(val)
	if err != nil {
		return "", false, append(diags, typeDiag(attr, "string", err))
	}
	return s, ok, diags
}

// attrBool evaluates attr as a bool.
func attrBool(attr *hcl.Attribute) (bool, bool, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return false, false, diags
	}
	if val.IsNull() {
		return false, false, diags
	}
	bv, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, false, append(diags, typeDiag(attr, "bool", err))
	}
	return bv.True(), true, diags
}

// ctyString converts a known value to a Go string. A null value reports
// ok == false.
func ctyString(val cty.Value) (string, bool, error) {
	if val.IsNull() {
		return "", false, nil
	}
	if !val.IsWhollyKnown() {
		return "", false, fmt.Errorf("value is not known")
	}
	sv, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", false, err
	}
	return sv.AsString(), true, nil
}

// attrParams evaluates a map of raw parameters, keeping the order the keys
// were written in.
func attrParams(attr *hcl.Attribute) ([][2]string, hcl.Diagnostics) {
	pairs, diags := hcl.ExprMap(attr.Expr)
	if diags.HasErrors() {
		return nil, diags
	}
	out := make([][2]string, 0, len(pairs))
	for _, pair := range pairs {
		key, kd := pair.Key.Value(nil)
		diags = append(diags, kd...)
		val, vd := pair.Value.Value(nil)
		diags = append(diags, vd...)
		if kd.HasErrors() || vd.HasErrors() {
			continue
		}

		k, ok, err := ctyString(key)
		if err != nil || !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid parameter name",
				Detail:   "Parameter names must be strings.",
				Subject:  pair.Key.Range().Ptr(),
			})
			continue
		}
		v, ok, err := ctyString(val)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid parameter value",
				Detail:   fmt.Sprintf("The value of parameter %q must be a string: %s.", k, err),
				Subject:  pair.Value.Range().Ptr(),
			})
			continue
		}
		if !ok {
			continue
		}
		out = append(out, [2]string{k, v})
	}
	return out, diags
}

func typeDiag(attr *hcl.Attribute, want string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Incorrect attribute value type",
		Detail:   fmt.Sprintf("Inappropriate value for attribute %q: %s required, %s.", attr.Name, want, err),
		Subject:  attr.Expr.Range().Ptr(),
	}
}
