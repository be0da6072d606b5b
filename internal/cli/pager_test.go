package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagerCommand(t *testing.T) {
	cases := []struct {
		name, own, pager, want string
	}{
		{"default", "", "", defaultPager},
		{"pager env", "", "more", "more"},
		{"own env wins", "most", "more", "most"},
		{"cat disables", "", "cat", ""},
		{"dash disables", "-", "more", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("KBREADER_PAGER", tc.own)
			t.Setenv("PAGER", tc.pager)
			assert.Equal(t, tc.want, pagerCommand())
		})
	}
}

func TestWithPagerNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	err := withPager(context.Background(), &buf, io.Discard, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", buf.String())
}
