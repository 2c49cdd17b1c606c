package storage

import "testing"

func TestObjectKey(t *testing.T) {
	cases := []struct {
		prefix, unique, filename, want string
	}{
		{"statements/7", "abc", "commissions 2026-03.csv", "statements/7/abc-commissions_2026-03.csv"},
		{"/statements/", "abc", "../../etc/passwd", "statements/abc-passwd"},
		{"", "abc", "report.csv", "abc-report.csv"},
	}

	for _, tc := range cases {
		if got := objectKey(tc.prefix, tc.unique, tc.filename); got != tc.want {
			t.Fatalf("objectKey(%q, %q, %q) = %q, want %q", tc.prefix, tc.unique, tc.filename, got, tc.want)
		}
	}
}
