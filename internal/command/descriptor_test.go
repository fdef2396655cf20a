package command

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/errors"
)

var (
	day1 = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	day2 = day1.Add(24 * time.Hour)
)

func TestSeriesEdit_Apply(t *testing.T) {
	base := client.Series{}.Append(day1, 80)

	tests := []struct {
		name       string
		edit       SeriesEdit
		series     client.Series
		wantLen    int
		wantLatest float64
		wantCode   errors.ErrorCode
	}{
		{"keep", SeriesEdit{}, base, 1, 80, ""},
		{"append", SeriesEdit{Op: SeriesAppend, Value: 78}, base, 2, 78, ""},
		{"remove", SeriesEdit{Op: SeriesRemoveLatest}, base, 0, 0, ""},
		{"remove empty", SeriesEdit{Op: SeriesRemoveLatest}, client.Series{}, 0, 0, errors.ErrEmptySeries},
		{"replace", SeriesEdit{Op: SeriesReplaceLatest, Value: 75}, base, 1, 75, ""},
		{"replace empty pushes", SeriesEdit{Op: SeriesReplaceLatest, Value: 75}, client.Series{}, 1, 75, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.edit.Apply(tt.series, day2, "weight")
			if tt.wantCode != "" {
				assert.True(t, errors.Is(err, tt.wantCode), "error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, got.Len())
			if latest, ok := got.Latest(); ok {
				assert.Equal(t, tt.wantLatest, latest.Value)
			}
		})
	}
}

func TestSeriesEdit_ReplaceMovesTimestamp(t *testing.T) {
	base := client.Series{}.Append(day1, 80)
	got, err := SeriesEdit{Op: SeriesReplaceLatest, Value: 81}.Apply(base, day2, "weight")
	require.NoError(t, err)

	latest, _ := got.Latest()
	assert.True(t, latest.At.Equal(day2), "replaced observation is stamped now")
}

func TestEditDescriptor_CarriesForward(t *testing.T) {
	orig := client.New(client.Details{
		Name:    "John",
		Phone:   "98765432",
		Email:   "john@example.com",
		Address: "Clementi",
		Tags:    client.NewTagSet("friends"),
		Weight:  client.Series{}.Append(day1, 80),
	})

	tags := client.NewTagSet("gym")
	desc := EditDescriptor{Email: StringPtr("j@example.org"), Tags: &tags}
	got, err := desc.Apply(orig, day2)
	require.NoError(t, err)

	assert.Equal(t, orig.ID(), got.ID())
	assert.Equal(t, "j@example.org", got.Email())
	assert.True(t, got.Tags().Equal(tags))
	assert.Equal(t, "John", got.Name())
	assert.Equal(t, "Clementi", got.Address())
	assert.True(t, got.Weight().Equal(orig.Weight()))
	assert.Equal(t, "john@example.com", orig.Email(), "original untouched")
}

func TestEditDescriptor_SeriesErrorAborts(t *testing.T) {
	orig := client.New(client.Details{Name: "John", Phone: "98765432"})
	_, err := EditDescriptor{Note: StringPtr("x"), Height: SeriesEdit{Op: SeriesRemoveLatest}}.Apply(orig, day2)
	assert.True(t, errors.Is(err, errors.ErrEmptySeries))
}

func TestEditDescriptor_IsAnyFieldEdited(t *testing.T) {
	assert.False(t, EditDescriptor{}.IsAnyFieldEdited())
	assert.True(t, EditDescriptor{Note: StringPtr("")}.IsAnyFieldEdited())
	assert.True(t, EditDescriptor{Weight: SeriesEdit{Op: SeriesRemoveLatest}}.IsAnyFieldEdited())
}
