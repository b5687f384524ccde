package domain

import "testing"

func TestHasPathPrefix(t *testing.T) {
	cases := []struct {
		path   string
		prefix string
		want   bool
	}{
		{"/project/src/lib.rs", "/project", true},
		{"/project", "/project", true},
		{"/project-other/src/lib.rs", "/project", false},
		{"/other/src/lib.rs", "/project", false},
		{"target/debug/out.rs", "target", true},
		{"targets/out.rs", "target", false},
		{"src/lib.rs", "target", false},
	}

	for _, tc := range cases {
		if got := hasPathPrefix(tc.path, tc.prefix); got != tc.want {
			t.Fatalf("hasPathPrefix(%q, %q) = %v, want %v", tc.path, tc.prefix, got, tc.want)
		}
	}
}
