package common

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	for _, format := range supported {
		if err := ValidateOutputFormat(format, supported); err != nil {
			t.Errorf("format %q should be accepted, got: %v", format, err)
		}
	}

	rejected := []string{"xml", "yaml", "csv", "JSON", ""}
	for _, format := range rejected {
		err := ValidateOutputFormat(format, supported)
		if err == nil {
			t.Errorf("format %q should be rejected", format)
			continue
		}
		if !strings.Contains(err.Error(), "unsupported output format") {
			t.Errorf("unexpected error for %q: %v", format, err)
		}
		if !strings.Contains(err.Error(), "'"+format+"'") {
			t.Errorf("error should name the rejected format %q: %v", format, err)
		}
	}
}

func TestValidateOutputFormatNoRestriction(t *testing.T) {
	// An empty supported list accepts anything
	if err := ValidateOutputFormat("xml", nil); err != nil {
		t.Errorf("empty format list should accept any format, got: %v", err)
	}
	if err := ValidateOutputFormat("xml", []string{}); err != nil {
		t.Errorf("empty format list should accept any format, got: %v", err)
	}
}

func TestValidateOutputFormatSingleEntry(t *testing.T) {
	if err := ValidateOutputFormat("json", []string{"json"}); err != nil {
		t.Errorf("expected json accepted, got: %v", err)
	}
	if err := ValidateOutputFormat("text", []string{"json"}); err == nil {
		t.Error("expected text rejected against json-only list")
	}
}

func TestGetSupportedFormats(t *testing.T) {
	cases := [][]string{
		{"json", "text", "markdown"},
		{"json"},
		{},
	}

	for _, formats := range cases {
		got := GetSupportedFormats(formats)
		if len(got) != len(formats) {
			t.Fatalf("expected %d formats, got %d", len(formats), len(got))
		}
		for i := range formats {
			if got[i] != formats[i] {
				t.Errorf("format[%d]: expected %q, got %q", i, formats[i], got[i])
			}
		}
	}
}

func BenchmarkValidateOutputFormat(b *testing.B) {
	supported := []string{"json", "text", "markdown"}

	b.Run("valid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("json", supported)
		}
	})

	b.Run("invalid format", func(b *testing.B) {
		for b.Loop() {
			_ = ValidateOutputFormat("xml", supported)
		}
	})
}
