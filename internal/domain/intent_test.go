package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeacherIntentGrade(t *testing.T) {
	cases := []struct {
		band string
		want int
	}{
		{"7", 7},
		{"Grade 9", 9},
		{"K", 0},
		{"AP Calc 12", 12},
		{"", 0},
	}
	for _, c := range cases {
		intent := TeacherIntent{GradeBand: c.band}
		assert.Equal(t, c.want, intent.Grade(), "band %q", c.band)
	}
}
