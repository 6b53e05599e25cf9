package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptYesNoIO(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes lowercase lf", input: "y\n", want: true},
		{name: "yes word cr", input: "yes\r", want: true},
		{name: "yes mixed case", input: "YeS\n", want: true},
		{name: "yes without newline", input: "y", want: true},
		{name: "empty defaults no", input: "\n", want: false},
		{name: "explicit no", input: "n\n", want: false},
		{name: "anything else", input: "sure\n", want: false},
		{name: "eof", input: "", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			got := promptYesNoIO(strings.NewReader(tc.input), &out, "Delete? [y/N] ")
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Delete? [y/N] ", out.String())
		})
	}
}

func TestPromptYesNoIO_NilReader(t *testing.T) {
	assert.False(t, promptYesNoIO(nil, nil, "ignored"))
}
