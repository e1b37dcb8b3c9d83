// SPDX-License-Identifier: MPL-2.0

package markup

import "testing"

func TestStrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "An  ordered\nsequence", "An ordered sequence"},
		{"code", "Tracked via <code>__consumer_offsets</code>.", "Tracked via __consumer_offsets."},
		{"adjacent", "<strong>pro</strong>duce", "produce"},
		{"entities", "A &amp; B &lt;3", "A & B <3"},
		{"link attribute dropped", `replicated with <a href="https://raft.github.io/">Raft</a>`, "replicated with Raft"},
		{"script hidden", "x<script>alert(1)</script>y", "xy"},
		{"comparison left open", "keeps a<b ordering", "keeps a<b ordering"},
		{"type parameter", "List<T> generic", "List<T> generic"},
		{"type parameters inside code", "<code>Map<K, V></code> lookups", "Map<K, V> lookups"},
		{"bare less-than", "a < b", "a < b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Strip(tt.in); got != tt.want {
				t.Errorf("Strip(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no markup", "no markup"},
		{"code", "use <code>ZADD</code>", "use `ZADD`"},
		{"emphasis", "<strong>a</strong> and <em>b</em>", "**a** and _b_"},
		{"link", `see <a href="https://etcd.io">etcd</a>`, "see [etcd](https://etcd.io)"},
		{"unknown tag", "<span>kept</span>", "kept"},
		{"comparison left open", "keeps a<b ordering", "keeps a<b ordering"},
		{"type parameter", "List<T> generic", "List<T> generic"},
		{"entity", "A &amp; B", "A & B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ToMarkdown(tt.in); got != tt.want {
				t.Errorf("ToMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
