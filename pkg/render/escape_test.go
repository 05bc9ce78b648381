package render

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHTML string
		wantAttr string
	}{
		{"empty", "", "", ""},
		{"plain", "#ff0000", "#ff0000", "#ff0000"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"angle brackets", "a < b > c", "a &lt; b &gt; c", "a &lt; b &gt; c"},
		{"quotes", `say "hi" it's`, "say &quot;hi&quot; it&#39;s", "say &quot;hi&quot; it&#39;s"},
		{"script", "<script>alert('x')</script>", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;", "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;"},
		{"whitespace", "a\n\r\tb", "a\n\r\tb", "a&#10;&#13;&#9;b"},
		{"unicode", "Hello 世界 🌍", "Hello 世界 🌍", "Hello 世界 🌍"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeHTML(tt.input); got != tt.wantHTML {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.wantHTML)
			}
			if got := escapeAttr(tt.input); got != tt.wantAttr {
				t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.wantAttr)
			}
		})
	}
}

func BenchmarkEscapeHTML(b *testing.B) {
	s := `<script>alert("xss")</script> & more content here`
	for i := 0; i < b.N; i++ {
		escapeHTML(s)
	}
}
