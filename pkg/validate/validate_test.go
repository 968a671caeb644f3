package validate_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/library-catalog/pkg/validate"
	"github.com/stretchr/testify/require"
)

type form struct {
	Name string `label:"First name" validate:"required,alphanum"`
	Born string `label:"Date of birth" validate:"omitempty,isodate"`
}

func TestCustomValidator_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   form
		want validate.Messages
	}{
		{name: "ok", in: form{Name: "Jane"}},
		{name: "ok. with date", in: form{Name: "Jane", Born: "1775-12-16"}},
		{name: "required", in: form{}, want: validate.Messages{"First name must be specified"}},
		{name: "alphanum", in: form{Name: "O'Brien123"}, want: validate.Messages{"First name has a non-alphanumeric character"}},
		{name: "bad date", in: form{Name: "Jane", Born: "not-a-date"}, want: validate.Messages{"Invalid date"}},
		{name: "year and month only", in: form{Name: "Jane", Born: "1775-12"}, want: validate.Messages{"Invalid date"}},
		{name: "week date", in: form{Name: "Jane", Born: "1775-W50-6"}, want: validate.Messages{"Invalid date"}},
		{
			name: "field order",
			in:   form{Name: "a b", Born: "1775-13-40"},
			want: validate.Messages{"First name has a non-alphanumeric character", "Invalid date"},
		},
	}
	v := validate.NewCustomValidator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(tt.in)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.Equal(t, tt.want, err)
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()
	got, err := validate.ParseDate("1817-07-18")
	require.NoError(t, err)
	require.Equal(t, time.Date(1817, time.July, 18, 0, 0, 0, 0, time.UTC), got)

	got, err = validate.ParseDate("2024-02-29T10:30:00Z")
	require.NoError(t, err)
	require.Equal(t, 29, got.Day())

	for _, raw := range []string{"2023-02-29", "not-a-date", "2020-01", "2020", "2020-W01-1", "2020-001", "20200101", "01/02/2020"} {
		_, err = validate.ParseDate(raw)
		require.Error(t, err, raw)
	}
	for _, raw := range []string{"2020-01-02", "2020-01-02T15:04", "2020-01-02T15:04:05", "2020-01-02T15:04:05.123+03:00"} {
		_, err = validate.ParseDate(raw)
		require.NoError(t, err, raw)
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()
	require.Equal(t, "Tom &amp; Jerry", validate.Escape("Tom & Jerry"))
	require.Equal(t, "&lt;b&gt;O&#x27;Brien&lt;&#x2F;b&gt;", validate.Escape("<b>O'Brien</b>"))
	require.Equal(t, "plain", validate.Escape("plain"))
}
