package extract

import (
	"testing"

	"github.com/hargabyte/specmap/internal/parser"
)

func TestResolveChain(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
		ok     bool
	}{
		{"bare identifier", "foo();", "foo", true},
		{"single member", "element.tap();", "element.tap", true},
		{"deep member", "a.b.c.d();", "a.b.c.d", true},
		{"this receiver", "this.helper();", "this.helper", true},
		{"call receiver", "api().submit();", "api().submit", true},
		{"call receiver deep", "client().session.open();", "client().session.open", true},
		{"chained calls", "fetch().then();", "fetch().then", true},
		{"computed property", "handlers[name]();", "", false},
		{"computed mid-chain", "a[b].c();", "", false},
		{"new expression receiver", "new Client().open();", "", false},
		{"array receiver", "[1, 2].map(fn);", "", false},
		{"string receiver", "'text'.trim();", "", false},
		{"parenthesized receiver", "(a || b).run();", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := setupExtractor(t, parser.JavaScript, tc.source)

			call := firstCall(t, e)
			callee := call.ChildByFieldName("function")
			if callee == nil {
				t.Fatalf("call has no function field")
			}

			got, ok := e.ResolveChain(callee)
			if ok != tc.ok {
				t.Fatalf("ResolveChain ok = %v, want %v", ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Errorf("ResolveChain = %q, want %q", got, tc.want)
			}
		})
	}
}
