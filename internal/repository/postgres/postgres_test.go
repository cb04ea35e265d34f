package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Maria", want: "Maria"},
		{name: "percent", in: "100%", want: `100\%`},
		{name: "underscore", in: "hair_cut", want: `hair\_cut`},
		{name: "backslash", in: `a\b`, want: `a\\b`},
		{name: "wildcard only", in: "%", want: `\%`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, escapeLike(tc.in))
		})
	}
}
