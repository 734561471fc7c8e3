package htmlsanitize_test

import (
	"html/template"
	"strings"
	"testing"

	"github.com/rent360/rent360/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	if got := htmlsanitize.Sanitize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	if got := htmlsanitize.Sanitize("La llave gotea"); got != "La llave gotea" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Urgente</strong> y <em>rápido</em></p>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected safe HTML preserved, got %q", got)
	}
}

func TestSanitize_RemovesDangerousContent(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		forbidden string
	}{
		{"script", "<p>Hola</p><script>alert('xss')</script>", "<script"},
		{"onclick", `<a href="https://example.com" onclick="alert(1)">x</a>`, "onclick"},
		{"javascript href", `<a href="javascript:alert(1)">x</a>`, "javascript:"},
		{"iframe", `<p>Texto</p><iframe src="https://evil.com"></iframe>`, "iframe"},
		{"style tag", `<style>body{color:red}</style><p>Texto</p>`, "<style"},
		{"form", `<form action="/x"><input name="a"></form>`, "<input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := htmlsanitize.Sanitize(tt.input)
			if strings.Contains(got, tt.forbidden) {
				t.Errorf("expected %q removed, got %q", tt.forbidden, got)
			}
		})
	}
}

func TestSanitize_KeepsLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com/foto.jpg">foto</a>`)
	if !strings.Contains(got, "https://example.com/foto.jpg") {
		t.Errorf("expected link preserved, got %q", got)
	}
}

func TestSanitize_KeepsLists(t *testing.T) {
	input := "<ul><li>Grifo</li><li>Ducha</li></ul>"
	if got := htmlsanitize.Sanitize(input); got != input {
		t.Errorf("expected list preserved, got %q", got)
	}
}

func TestSanitizeToHTML(t *testing.T) {
	got := htmlsanitize.SanitizeToHTML("<p>Hola</p><script>x</script>")
	if got != template.HTML("<p>Hola</p>") {
		t.Errorf("got %q", got)
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hola", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hola</p>", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlainTextToHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Hola", "<p>Hola</p>"},
		{"Línea 1\nLínea 2", "<p>Línea 1<br>Línea 2</p>"},
		{"Línea 1\r\nLínea 2", "<p>Línea 1<br>Línea 2</p>"},
		{"A & B", "<p>A &amp; B</p>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.PlainTextToHTML(tt.in); got != tt.want {
			t.Errorf("PlainTextToHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlainTextToHTML_Escapes(t *testing.T) {
	got := htmlsanitize.PlainTextToHTML("5 < 10")
	if got != "<p>5 &lt; 10</p>" {
		t.Errorf("got %q", got)
	}
}

func TestForStorage(t *testing.T) {
	if got := htmlsanitize.ForStorage("  Sin agua caliente\nDesde ayer  "); got != "<p>Sin agua caliente<br>Desde ayer</p>" {
		t.Errorf("plain text: got %q", got)
	}
	if got := htmlsanitize.ForStorage("<p>Hola</p><script>x</script>"); got != "<p>Hola</p>" {
		t.Errorf("markup: got %q", got)
	}
}

func TestPrepareForDisplay(t *testing.T) {
	if got := htmlsanitize.PrepareForDisplay("Línea 1\nLínea 2"); got != template.HTML("<p>Línea 1<br>Línea 2</p>") {
		t.Errorf("got %q", got)
	}
}

func TestText(t *testing.T) {
	if got := htmlsanitize.Text("<p>Fuga en <strong>baño</strong></p>"); got != "Fuga en baño" {
		t.Errorf("got %q", got)
	}
}
