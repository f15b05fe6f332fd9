package jetcsv_test

import (
	"testing"
	"time"

	"github.com/jetsons/jetcsv"
	"github.com/stretchr/testify/require"
)

// TestMarshalOmitEmpty covers the ",omitempty" struct tag option.
func TestMarshalOmitEmpty(t *testing.T) {
	type omit struct {
		String     string    `csv:"string,omitempty"`
		Int        int       `csv:"int,omitempty"`
		Float      float64   `csv:"float,omitempty"`
		Bool       bool      `csv:"bool,omitempty"`
		Pointer    *int      `csv:"pointer,omitempty"`
		Time       time.Time `csv:"time,omitempty"`
		unexported string
	}
	header := "string,int,float,bool,pointer,time\n"

	t.Run("zero values are written as empty fields", func(t *testing.T) {
		out, err := jetcsv.Marshal([]omit{{unexported: "ignored"}})
		require.NoError(t, err)
		require.Equal(t, header+",,,,,\n", string(out))
	})

	t.Run("non-zero values are written", func(t *testing.T) {
		n := 123
		out, err := jetcsv.Marshal([]omit{{
			String:  "hello",
			Int:     1,
			Float:   3.14,
			Bool:    true,
			Pointer: &n,
			Time:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		}})
		require.NoError(t, err)
		require.Equal(t, header+"hello,1,3.14,true,123,2024-05-01T00:00:00Z\n", string(out))
	})

	t.Run("fields without omitempty keep their zero value", func(t *testing.T) {
		type mixed struct {
			A int  `csv:"a"`
			B int  `csv:"b,omitempty"`
			C bool `csv:"c"`
		}
		out, err := jetcsv.Marshal([]mixed{{}})
		require.NoError(t, err)
		require.Equal(t, "a,b,c\n0,,false\n", string(out))
	})

	t.Run("omitted fields decode back to zero", func(t *testing.T) {
		out, err := jetcsv.Marshal([]omit{{String: "x"}})
		require.NoError(t, err)

		var back []omit
		require.NoError(t, jetcsv.Unmarshal(out, &back))
		require.Equal(t, []omit{{String: "x"}}, back)
	})
}
