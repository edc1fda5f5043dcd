package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommandMatrix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr string
	}{
		{name: "empty", input: "   ", want: nil},
		{name: "comment", input: "# wl-copy", want: nil},
		{name: "simple", input: "wl-copy --trim-newline", want: []string{"wl-copy", "--trim-newline"}},
		{name: "quoted", input: `notify-send "Parlo Dictation"`, want: []string{"notify-send", "Parlo Dictation"}},
		{name: "single quotes", input: `sh -c 'cat > /tmp/out'`, want: []string{"sh", "-c", "cat > /tmp/out"}},
		{name: "escape", input: `echo hello\ world`, want: []string{"echo", "hello world"}},
		{name: "unterminated quote", input: `echo "oops`, wantErr: "unterminated quote"},
		{name: "unterminated escape", input: `echo oops\`, wantErr: "unterminated escape"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			argv, err := ParseCommand(tc.input)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, argv)
		})
	}
}
