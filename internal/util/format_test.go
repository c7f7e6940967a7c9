package util

import "testing"

func fp(v float64) *float64 { return &v }

func TestFormatMonto(t *testing.T) {
	cases := []struct {
		name  string
		input *float64
		want  string
	}{
		{name: "absent is not zero", input: nil, want: "N/A"},
		{name: "zero", input: fp(0), want: "$0"},
		{name: "thousands", input: fp(1234567), want: "$1,234,567"},
		{name: "decimals kept", input: fp(1500.5), want: "$1,500.5"},
		{name: "small", input: fp(999), want: "$999"},
		{name: "negative", input: fp(-1000), want: "-$1,000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatMonto(tc.input); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("corto", 10); got != "corto" {
		t.Fatalf("got %q", got)
	}
	if got := Preview("texto bastante largo", 5); got != "texto..." {
		t.Fatalf("got %q", got)
	}
}
