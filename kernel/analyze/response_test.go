package analyze

import (
	"testing"

	"github.com/blevesearch/bleve/analysis"
)

func TestTokenTypeName(t *testing.T) {
	cases := []struct {
		tt   analysis.TokenType
		want string
	}{
		{analysis.AlphaNumeric, "alphanumeric"},
		{analysis.Ideographic, "ideographic"},
		{analysis.Numeric, "numeric"},
		{analysis.DateTime, "datetime"},
		{analysis.Shingle, "shingle"},
		{analysis.Single, "single"},
		{analysis.Double, "double"},
		{analysis.Boolean, "boolean"},
		{analysis.TokenType(99), "unknown"},
	}
	for _, c := range cases {
		if got := TokenTypeName(c.tt); got != c.want {
			t.Fatalf("type %d: got %q, want %q", c.tt, got, c.want)
		}
	}
}
