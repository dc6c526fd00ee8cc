package label

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelString(t *testing.T) {
	require.Equal(t, "person", Of("person").String())
	require.Equal(t, "marriage:husband", Scoped("marriage", "husband").String())
}

func TestLabelEquality(t *testing.T) {
	seen := map[Label]int{}
	seen[Scoped("marriage", "spouse")]++
	seen[Scoped("marriage", "spouse")]++
	seen[Scoped("friendship", "spouse")]++
	seen[Of("spouse")]++

	require.Len(t, seen, 3)
	require.Equal(t, 2, seen[Scoped("marriage", "spouse")])
	require.NotEqual(t, Of("spouse"), Scoped("marriage", "spouse"))
}

func TestParse(t *testing.T) {
	tcs := []struct {
		input    string
		expected Label
		err      bool
	}{
		{"person", Of("person"), false},
		{"marriage:husband", Scoped("marriage", "husband"), false},
		{"", Label{}, true},
		{":husband", Label{}, true},
		{"marriage:", Label{}, true},
		{"a:b:c", Label{}, true},
	}

	for _, tc := range tcs {
		t.Run(tc.input, func(t *testing.T) {
			parsed, err := Parse(tc.input)
			if tc.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, parsed)
			require.Equal(t, tc.input, parsed.String())
		})
	}
}
