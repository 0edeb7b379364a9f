package normalization

import "testing"

func strPtr(s string) *string { return &s }

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"  Rice ":  "rice",
		"EGG":      "egg",
		"Grammes":  "grammes",
		"  ":       "",
		"Oat Milk": "oat milk",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeUnit(t *testing.T) {
	if got := NormalizeUnit(nil); got != nil {
		t.Errorf("NormalizeUnit(nil) = %v, want nil", *got)
	}
	if got := NormalizeUnit(strPtr("   ")); got != nil {
		t.Errorf("NormalizeUnit(blank) = %v, want nil", *got)
	}
	if got := NormalizeUnit(strPtr(" G ")); got == nil || *got != "g" {
		t.Errorf("NormalizeUnit(\" G \") = %v, want g", got)
	}
}

func TestCommensurable(t *testing.T) {
	cases := []struct {
		name string
		a, b *string
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", strPtr("g"), nil, true},
		{"one blank", strPtr("g"), strPtr(" "), true},
		{"equal after trim/lower", strPtr(" G "), strPtr("g"), true},
		{"different units", strPtr("g"), strPtr("ml"), false},
		{"different units reversed", strPtr("ml"), strPtr("g"), false},
	}
	for _, tc := range cases {
		if got := Commensurable(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: Commensurable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
