package mapper

import (
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type base struct {
	ID int `csv:"id"`
}

type person struct {
	base
	FirstName  string
	LastName   string `csv:"surname"`
	Age        uint8
	Score      float64
	Active     bool
	Joined     time.Time
	Timeout    time.Duration
	Nick       *string
	Addr       netip.Addr
	Raw        []byte
	Any        any
	unexported string
	Ignored    string `csv:"-"`
	Note       string `csv:"note,omitempty"`
}

type setterRecord struct {
	got map[string]string
}

func (s *setterRecord) SetCSVField(name, value string) error {
	if s.got == nil {
		s.got = map[string]string{}
	}
	s.got[name] = value
	return nil
}

func TestAssignStruct(t *testing.T) {
	a := &Assigner{}
	rv := New(reflect.TypeFor[person]())

	for name, value := range map[string]string{
		"id":        "7",
		"FirstName": "Ada",
		"SURNAME":   "Lovelace",
		"age":       "36",
		"Score":     "9.5",
		"Active":    "true",
		"Joined":    "1843-07-10",
		"Timeout":   "1m30s",
		"Nick":      "countess",
		"Addr":      "10.0.0.1",
		"Raw":       "bytes",
		"Any":       "anything",
		"Ignored":   "x",
		"missing":   "x",
	} {
		require.NoError(t, a.Assign(rv, name, value), name)
	}

	p := rv.Interface().(person)
	require.Equal(t, 7, p.ID)
	require.Equal(t, "Ada", p.FirstName)
	require.Equal(t, "Lovelace", p.LastName)
	require.Equal(t, uint8(36), p.Age)
	require.Equal(t, 9.5, p.Score)
	require.True(t, p.Active)
	require.Equal(t, time.Date(1843, 7, 10, 0, 0, 0, 0, time.UTC), p.Joined)
	require.Equal(t, 90*time.Second, p.Timeout)
	require.NotNil(t, p.Nick)
	require.Equal(t, "countess", *p.Nick)
	require.Equal(t, netip.MustParseAddr("10.0.0.1"), p.Addr)
	require.Equal(t, []byte("bytes"), p.Raw)
	require.Equal(t, "anything", p.Any)
	require.Empty(t, p.Ignored)
}

func TestAssignEmptyLeavesZero(t *testing.T) {
	a := &Assigner{}
	rv := New(reflect.TypeFor[*person]())
	require.NoError(t, a.Assign(rv, "Age", ""))
	require.NoError(t, a.Assign(rv, "Nick", ""))
	require.NoError(t, a.Assign(rv, "Joined", ""))

	p := rv.Interface().(*person)
	require.Zero(t, p.Age)
	require.Nil(t, p.Nick)
	require.True(t, p.Joined.IsZero())
}

func TestAssignConversionErrors(t *testing.T) {
	tests := []struct {
		field       string
		value       string
		expectedErr string
	}{
		{"Age", "abc", `cannot convert "abc" into Go value of type uint8`},
		{"Age", "300", "integer value 300 overflows Go value of type uint8"},
		{"id", "1.5", `cannot convert "1.5" into Go value of type int`},
		{"Active", "maybe", `cannot convert "maybe" into Go value of type bool`},
		{"Joined", "yesterday", `cannot convert "yesterday" into time.Time`},
		{"Addr", "not-an-ip", `cannot convert "not-an-ip" into Go value of type netip.Addr`},
	}

	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			a := &Assigner{}
			err := a.Assign(New(reflect.TypeFor[person]()), tt.field, tt.value)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestAssignMaps(t *testing.T) {
	a := &Assigner{}

	rv := New(reflect.TypeFor[map[string]string]())
	require.NoError(t, a.Assign(rv, "a", "1"))
	require.Equal(t, map[string]string{"a": "1"}, rv.Interface())

	rv = New(reflect.TypeFor[map[string]any]())
	require.NoError(t, a.Assign(rv, "a", "1"))
	require.Equal(t, map[string]any{"a": "1"}, rv.Interface())

	rv = New(reflect.TypeFor[map[string]int]())
	require.NoError(t, a.Assign(rv, "a", "1"))
	require.Error(t, a.Assign(rv, "b", "x"))
	require.Equal(t, map[string]int{"a": 1}, rv.Interface())
}

func TestAssignSetter(t *testing.T) {
	a := &Assigner{}
	rv := New(reflect.TypeFor[setterRecord]())
	require.NoError(t, a.Assign(rv, "Column1", "v"))
	require.Equal(t, map[string]string{"Column1": "v"}, rv.Interface().(setterRecord).got)
}

func TestAssignCustomTimeLayout(t *testing.T) {
	a := &Assigner{TimeLayouts: []string{"02.01.2006"}}
	rv := New(reflect.TypeFor[person]())
	require.NoError(t, a.Assign(rv, "Joined", "10.07.1843"))
	require.Equal(t, time.Date(1843, 7, 10, 0, 0, 0, 0, time.UTC), rv.Interface().(person).Joined)
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check(reflect.TypeFor[person]()))
	require.NoError(t, Check(reflect.TypeFor[*person]()))
	require.NoError(t, Check(reflect.TypeFor[map[string]string]()))
	require.NoError(t, Check(reflect.TypeFor[setterRecord]()))
	require.Error(t, Check(reflect.TypeFor[map[int]string]()))
	require.Error(t, Check(reflect.TypeFor[string]()))
}

func TestNamesAndText(t *testing.T) {
	require.Equal(t,
		[]string{"id", "FirstName", "surname", "Age", "Score", "Active", "Joined", "Timeout", "Nick", "Addr", "Raw", "Any", "note"},
		Names(reflect.TypeFor[*person]()))

	nick := "countess"
	p := person{
		base:      base{ID: 3},
		FirstName: "Ada",
		Age:       36,
		Score:     0.25,
		Joined:    time.Date(1843, 7, 10, 0, 0, 0, 0, time.UTC),
		Timeout:   time.Minute,
		Nick:      &nick,
		Addr:      netip.MustParseAddr("10.0.0.1"),
	}
	a := &Assigner{}
	rv := reflect.ValueOf(p)
	for name, expected := range map[string]string{
		"id":        "3",
		"FirstName": "Ada",
		"Age":       "36",
		"Score":     "0.25",
		"Active":    "false",
		"Joined":    "1843-07-10T00:00:00Z",
		"Timeout":   "1m0s",
		"Nick":      "countess",
		"Addr":      "10.0.0.1",
		"Any":       "",
		"note":      "",
		"missing":   "",
	} {
		got, err := a.Text(rv, name)
		require.NoError(t, err, name)
		require.Equal(t, expected, got, name)
	}

	m := map[string]string{"b": "2", "a": "1"}
	require.Equal(t, []string{"a", "b"}, MapKeys(reflect.ValueOf(m)))
	got, err := a.Text(reflect.ValueOf(m), "b")
	require.NoError(t, err)
	require.Equal(t, "2", got)
}

type inner struct {
	ID   int
	Name string `csv:"name"`
}

type other struct {
	ID   int
	Code string
}

type taggedID struct {
	Key string `csv:"ID"`
}

type Node struct {
	*Node
	Value string
}

func TestFieldVisibility(t *testing.T) {
	t.Run("outer field wins over an embedded field declared first", func(t *testing.T) {
		type record struct {
			inner
			ID string
		}
		f, ok := cachedFields(reflect.TypeFor[record]()).find("ID")
		require.True(t, ok)
		require.Equal(t, []int{1}, f.idx)

		rv := New(reflect.TypeFor[record]())
		require.NoError(t, (&Assigner{}).Assign(rv, "ID", "abc"))
		require.NoError(t, (&Assigner{}).Assign(rv, "name", "Ada"))
		require.Equal(t, record{inner: inner{Name: "Ada"}, ID: "abc"}, rv.Interface())
	})

	t.Run("same depth is ambiguous", func(t *testing.T) {
		type record struct {
			inner
			other
		}
		fields := cachedFields(reflect.TypeFor[record]())
		_, ok := fields.find("ID")
		require.False(t, ok)
		_, ok = fields.find("name")
		require.True(t, ok)
		_, ok = fields.find("Code")
		require.True(t, ok)
		require.Equal(t, []string{"name", "Code"}, Names(reflect.TypeFor[record]()))
	})

	t.Run("tagged field wins at the same depth", func(t *testing.T) {
		type record struct {
			inner
			taggedID
		}
		f, ok := cachedFields(reflect.TypeFor[record]()).find("ID")
		require.True(t, ok)
		require.Equal(t, []int{1, 0}, f.idx)
	})

	t.Run("recursive embedding terminates", func(t *testing.T) {
		require.Equal(t, []string{"Value"}, Names(reflect.TypeFor[Node]()))
	})
}
