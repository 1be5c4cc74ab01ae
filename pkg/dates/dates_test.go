package dates

import "testing"

func TestToISO(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "display form", input: "15/03/2024", want: "2024-03-15"},
		{name: "display form without padding", input: "5/3/2024", want: "2024-03-05"},
		{name: "already canonical", input: "2024-03-15", want: "2024-03-15"},
		{name: "canonical without padding is normalized", input: "2024-3-5", want: "2024-03-05"},
		{name: "empty", input: "", wantErr: true},
		{name: "too few parts", input: "15/2024", wantErr: true},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "impossible day", input: "32/01/2024", wantErr: true},
		{name: "surrounding whitespace", input: " 15/03/2024 ", want: "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToISO(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ToISO(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToISO(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ToISO(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToDisplay(t *testing.T) {
	if got := ToDisplay("2024-03-15"); got != "15/03/2024" {
		t.Errorf("ToDisplay = %q, want 15/03/2024", got)
	}
	if got := ToDisplay("not-a-date-at-all"); got != "not-a-date-at-all" {
		t.Errorf("ToDisplay should pass through unrecognized values, got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	canonical := []string{"2024-03-15", "2023-12-31", "2024-01-01"}
	for _, d := range canonical {
		back, err := ToISO(ToDisplay(d))
		if err != nil {
			t.Fatalf("round trip of %q failed: %v", d, err)
		}
		if back != d {
			t.Errorf("round trip of %q = %q", d, back)
		}
	}

	display := []string{"15/03/2024", "31/12/2023", "01/01/2024"}
	for _, d := range display {
		iso, err := ToISO(d)
		if err != nil {
			t.Fatalf("ToISO(%q) failed: %v", d, err)
		}
		if back := ToDisplay(iso); back != d {
			t.Errorf("round trip of %q = %q", d, back)
		}
	}
}
