//go:build go1.18

package jetcsv_test

import (
	"testing"

	"github.com/jetsons/jetcsv"
	"github.com/jetsons/jetcsv/internal/testutil"
	"github.com/stretchr/testify/require"
)

func FuzzDecode(f *testing.F) {
	// Seed the corpus with the fixtures used by the other tests.
	for _, name := range testutil.Fixtures() {
		data, err := testutil.ReadTestData(name)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", name, err)
		}
		f.Add(string(data), false)
	}

	// Add some simple but important edge cases manually.
	f.Add("", false)
	f.Add(`"`, true)
	f.Add(`a,"b`, true)
	f.Add("\"\"\"\n\"\"", false)
	f.Add(`\"`, false)
	f.Add("1,2\r\n3", false)

	f.Fuzz(func(t *testing.T, input string, strict bool) {
		var opts []jetcsv.Option
		if strict {
			opts = append(opts, jetcsv.Strict())
		}

		// Decoding must never panic and never return a nil result.
		res, err := jetcsv.Decode[map[string]string](input, opts...)
		require.NoError(t, err)
		require.NotNil(t, res)

		// Every value must be bound to a known header.
		for _, rec := range res.Records {
			for key := range rec {
				require.Contains(t, res.Headers, key)
			}
		}

		if !strict {
			require.Empty(t, res.Errors)
		}
	})
}
