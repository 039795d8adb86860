package farmer

import "testing"

func TestMatchesSearch(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  bool
	}{
		{"Rose", "ros", true},
		{"Jasmine", "ros", false},
		{"ROSE", "ros", true},
		{"Rose", "ROS", true},
		{"Ramasamy", "sam", true},
		{"Rose", "rose gold", false},
		{"Rose", "", true},
	}

	for _, tc := range cases {
		if got := matchesSearch(tc.name, tc.query); got != tc.want {
			t.Errorf("matchesSearch(%q, %q) = %v, want %v", tc.name, tc.query, got, tc.want)
		}
	}
}
