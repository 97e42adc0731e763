package validation

import "testing"

func TestViolations(t *testing.T) {
	v := make(Violations)
	Required("name", "  ", v)
	Percent("taxRate", 150, v)
	Percent("discountRate", 10, v)
	MinLen("password", "short", 8, v)
	MinLen("token", "", 8, v) // empty is Required's concern, not MinLen's
	MaxLen("label", "abcdef", 3, v)

	want := map[string]string{
		"name":     "required",
		"taxRate":  "out_of_range",
		"password": "too_short",
		"label":    "too_long",
	}
	if len(v) != len(want) {
		t.Fatalf("violations = %v, want %v", v, want)
	}
	for field, code := range want {
		if v[field] != code {
			t.Errorf("%s = %q, want %q", field, v[field], code)
		}
	}
}
