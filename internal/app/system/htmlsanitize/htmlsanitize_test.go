package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/assisberlanda/sousolidario/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("Precisamos de água potável"); got != "Precisamos de água potável" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Urgente</strong> e <em>importante</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_AllowsLists(t *testing.T) {
	input := "<ul><li>Água</li><li>Colchões</li></ul>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected list preserved, got %q", got)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Olá</p><script>alert('xss')</script>")
	if got != "<p>Olá</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesDangerousAttributes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		bad   string
	}{
		{"onclick", `<button onclick="alert('xss')">Doar</button>`, "onclick"},
		{"javascript href", `<a href="javascript:alert('xss')">Doar</a>`, "javascript:"},
		{"iframe", `<p>Texto</p><iframe src="https://evil.example"></iframe>`, "iframe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tt.input)
			if strings.Contains(got, tt.bad) {
				t.Errorf("expected %q removed, got %q", tt.bad, got)
			}
		})
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Maria da Silva", "Maria da Silva"},
		{"<b>Água</b> & comida", "Água & comida"},
		{"  Rua d'Água, 10 <script>x()</script> ", "Rua d'Água, 10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := htmlsanitize.PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
