package service

import "testing"

func TestLanguageGate_IsEnglish(t *testing.T) {
	gate := NewLanguageGate()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "english property query",
			text: "Show me properties listed in San Francisco under $700,000 with three bedrooms",
			want: true,
		},
		{
			name: "spanish query",
			text: "Muéstrame las propiedades en venta en Madrid con tres habitaciones y dos baños",
			want: false,
		},
		{
			name: "french query",
			text: "Montrez-moi les maisons à vendre à Paris avec trois chambres",
			want: false,
		},
		{
			name: "empty input fails closed",
			text: "",
			want: false,
		},
		{
			name: "whitespace fails closed",
			text: "   \t\n",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gate.IsEnglish(tt.text); got != tt.want {
				t.Errorf("IsEnglish(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLanguageGate_IsDeterministic(t *testing.T) {
	gate := NewLanguageGate()
	query := "Find homes with 3 bedrooms in Austin under $400,000"

	first := gate.IsEnglish(query)
	for i := 0; i < 10; i++ {
		if got := gate.IsEnglish(query); got != first {
			t.Fatalf("run %d flipped the verdict", i)
		}
	}
}
