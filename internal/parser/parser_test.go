package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/command"
	"github.com/fitbook/fitbook/internal/errors"
)

func mustParse(t *testing.T, line string) command.Command {
	t.Helper()
	cmd, err := Parse(line)
	require.NoError(t, err, "Parse(%q)", line)
	return cmd
}

func assertCode(t *testing.T, line string, code errors.ErrorCode) {
	t.Helper()
	_, err := Parse(line)
	assert.True(t, errors.Is(err, code), "Parse(%q) error = %v, want %s", line, err, code)
}

func TestParse_EmptyAndUnknown(t *testing.T) {
	assertCode(t, "   ", errors.ErrInvalidCommandFormat)

	_, err := Parse("delte 1")
	require.True(t, errors.Is(err, errors.ErrUnknownCommand))
	assert.Contains(t, err.Error(), `"delete"`)
}

func TestParse_Add(t *testing.T) {
	cmd := mustParse(t, "add n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2 nt/likes yoga t/friends t/gym w/80 h/180")
	add, ok := cmd.(command.Add)
	require.True(t, ok)

	assert.Equal(t, "John Doe", add.Details.Name)
	assert.Equal(t, "98765432", add.Details.Phone)
	assert.Equal(t, "johnd@example.com", add.Details.Email)
	assert.Equal(t, "311, Clementi Ave 2", add.Details.Address)
	assert.Equal(t, "likes yoga", add.Details.Note)
	assert.Equal(t, []string{"friends", "gym"}, add.Details.Tags.Values())
	require.NotNil(t, add.Weight)
	assert.Equal(t, 80.0, *add.Weight)
	require.NotNil(t, add.Height)
	assert.Equal(t, 180.0, *add.Height)
}

func TestParse_AddErrors(t *testing.T) {
	assertCode(t, "add p/98765432", errors.ErrInvalidCommandFormat)
	assertCode(t, "add n/John", errors.ErrInvalidCommandFormat)
	assertCode(t, "add junk n/John p/98765432", errors.ErrInvalidCommandFormat)
	assertCode(t, "add n/John n/Jane p/98765432", errors.ErrDuplicateField)
	assertCode(t, "add n/J*hn p/98765432", errors.ErrInvalidValue)
	assertCode(t, "add n/John p/98", errors.ErrInvalidValue)
	assertCode(t, "add n/John p/98765432 t/two words", errors.ErrInvalidValue)
	assertCode(t, "add n/John p/98765432 w/0", errors.ErrInvalidValue)
}

func TestParse_ErrorsCarryUsage(t *testing.T) {
	_, err := Parse("add n/John n/Jane p/98765432")
	require.Error(t, err)
	assert.Contains(t, err.Error(), command.UsageAdd)

	_, err = Parse("delete")
	assert.Contains(t, err.Error(), command.UsageDelete)
}

func TestParse_Edit(t *testing.T) {
	cmd := mustParse(t, "edit 2 p/91234567 w/82 h/0 t/")
	edit := cmd.(command.Edit)

	assert.Equal(t, 1, edit.Index)
	require.NotNil(t, edit.Desc.Phone)
	assert.Equal(t, "91234567", *edit.Desc.Phone)
	assert.Nil(t, edit.Desc.Name)
	assert.Equal(t, command.SeriesEdit{Op: command.SeriesReplaceLatest, Value: 82}, edit.Desc.Weight)
	assert.Equal(t, command.SeriesRemoveLatest, edit.Desc.Height.Op)
	require.NotNil(t, edit.Desc.Tags)
	assert.True(t, edit.Desc.Tags.IsEmpty())
}

func TestParse_EditWeightSentinels(t *testing.T) {
	for _, line := range []string{"edit 1 w/0", "edit 1 w/", "edit 1 w/ 0.0"} {
		edit := mustParse(t, line).(command.Edit)
		assert.Equal(t, command.SeriesRemoveLatest, edit.Desc.Weight.Op, line)
	}
}

func TestParse_EditErrors(t *testing.T) {
	assertCode(t, "edit", errors.ErrMissingIndex)
	assertCode(t, "edit n/John", errors.ErrMissingIndex)
	assertCode(t, "edit 0 n/John", errors.ErrInvalidIndex)
	assertCode(t, "edit -1 n/John", errors.ErrInvalidIndex)
	assertCode(t, "edit +1 n/John", errors.ErrInvalidIndex)
	assertCode(t, "edit abc n/John", errors.ErrInvalidIndex)
	assertCode(t, "edit 1", errors.ErrNothingToEdit)
	assertCode(t, "edit 1 p/1 p/2", errors.ErrDuplicateField)
	assertCode(t, "edit 1 e/not-an-email", errors.ErrInvalidValue)
	assertCode(t, "edit 1 w/-5", errors.ErrInvalidValue)
}

func TestParse_IndexCommands(t *testing.T) {
	assert.Equal(t, command.Delete{Index: 0}, mustParse(t, "delete 1"))
	assert.Equal(t, command.EditNote{Index: 2}, mustParse(t, "editnote 3"))
	assertCode(t, "delete", errors.ErrMissingIndex)
	assertCode(t, "delete 1 2", errors.ErrInvalidIndex)
	assertCode(t, "delete 0", errors.ErrInvalidIndex)
}

func TestParse_Note(t *testing.T) {
	assert.Equal(t, command.Note{Index: 0, Text: "prefers  mornings"}, mustParse(t, "note 1   prefers  mornings  "))
	assert.Equal(t, command.Note{Index: 1}, mustParse(t, "note 2"))
	assertCode(t, "note", errors.ErrMissingIndex)
	assertCode(t, "note x hello", errors.ErrInvalidIndex)
}

func TestParse_WeightAndHeight(t *testing.T) {
	assert.Equal(t, command.Weight{Index: 0, Edit: command.SeriesEdit{Op: command.SeriesAppend, Value: 80}}, mustParse(t, "weight 1 w/80"))
	assert.Equal(t, command.Weight{Index: 0, Edit: command.SeriesEdit{Op: command.SeriesRemoveLatest}}, mustParse(t, "weight 1 w/0"))
	assert.Equal(t, command.Weight{Index: 0, Edit: command.SeriesEdit{Op: command.SeriesRemoveLatest}}, mustParse(t, "weight 1"))

	assert.Equal(t, command.Height{Index: 0, Edit: command.SeriesEdit{Op: command.SeriesAppend, Value: 180}}, mustParse(t, "height 1 h/180"))
	assert.Equal(t, command.Height{Index: 0, Edit: command.SeriesEdit{Op: command.SeriesAppend, Value: 175}}, mustParse(t, "height 1 w/175"))

	assertCode(t, "height 1 h/180 w/180", errors.ErrDuplicateField)
	assertCode(t, "weight 1 w/80 w/81", errors.ErrDuplicateField)
	assertCode(t, "weight 1 w/2000", errors.ErrInvalidValue)
	assertCode(t, "height 1 h/301", errors.ErrInvalidValue)
	assertCode(t, "weight w/80", errors.ErrMissingIndex)
}

func TestParse_Find(t *testing.T) {
	find := mustParse(t, "find alice   tan t/friends t/gym w/50, 70 ex/squats e/").(command.Find)

	want := []client.Criterion{
		{Field: client.FieldName, Query: client.TextQuery{Text: "alice tan"}},
		{Field: client.FieldEmail, Query: client.TextQuery{Text: ""}},
		{Field: client.FieldTags, Query: client.TagQuery{Tags: []string{"friends", "gym"}}},
		{Field: client.FieldExercises, Query: client.ExerciseQuery{Names: []string{"squats"}}},
		{Field: client.FieldWeight, Query: client.NewRange(50, 70)},
	}
	assert.Equal(t, want, find.Criteria)
}

func TestParse_FindErrors(t *testing.T) {
	assertCode(t, "find", errors.ErrInvalidCommandFormat)
	assertCode(t, "find alice n/bob", errors.ErrInvalidCommandFormat)
	assertCode(t, "find n/a n/b", errors.ErrDuplicateField)
	assertCode(t, "find w/70, 50", errors.ErrInvalidRange)
	assertCode(t, "find h/abc", errors.ErrInvalidRange)
	assertCode(t, "find w/1,2,3", errors.ErrInvalidRange)
}

func TestParseRange(t *testing.T) {
	q, err := ParseRange(" 60 ,80 ")
	require.NoError(t, err)
	assert.Equal(t, client.NewRange(60, 80), q)

	q, err = ParseRange("  ")
	require.NoError(t, err)
	assert.True(t, q.IsEmpty())

	q, err = ParseRange("70, 70")
	require.NoError(t, err)
	assert.True(t, q.Contains(70))
}

func TestParse_FitAdd(t *testing.T) {
	fit := mustParse(t, "fitadd 1 n/Bench   press s/3 rt/90").(command.FitAdd)

	assert.Equal(t, 0, fit.Index)
	assert.Equal(t, "Bench press", fit.Name)
	require.NotNil(t, fit.Sets)
	assert.Equal(t, 3, *fit.Sets)
	assert.Nil(t, fit.Reps)
	require.NotNil(t, fit.Rest)
	assert.Equal(t, 90, *fit.Rest)

	assertCode(t, "fitadd 1 s/3", errors.ErrInvalidCommandFormat)
	assertCode(t, "fitadd 1 n/squats s/0", errors.ErrInvalidValue)
	assertCode(t, "fitadd 1 n/squats rt/4000", errors.ErrInvalidValue)
	assertCode(t, "fitadd 1 n/squats r/1 r/2", errors.ErrDuplicateField)
	assertCode(t, "fitadd n/squats", errors.ErrMissingIndex)
}

func TestParse_FitDelete(t *testing.T) {
	assert.Equal(t, command.FitDelete{Index: 0, Name: "squats"}, mustParse(t, "fitdelete 1 n/squats"))
	assert.Equal(t, command.FitDelete{Index: 0, All: true}, mustParse(t, "fitdelete 1 /all"))

	assertCode(t, "fitdelete 1", errors.ErrInvalidCommandFormat)
	assertCode(t, "fitdelete 1 n/squats /all", errors.ErrInvalidCommandFormat)
	assertCode(t, "fitdelete 1 /all extra", errors.ErrInvalidCommandFormat)
}

func TestParse_ClearHelpExitList(t *testing.T) {
	assert.Equal(t, command.Clear{}, mustParse(t, "clear"))
	assert.Equal(t, command.Clear{Confirmed: true}, mustParse(t, "clear /confirm"))
	assertCode(t, "clear now", errors.ErrInvalidCommandFormat)

	assert.Equal(t, command.Help{}, mustParse(t, "help"))
	assert.Equal(t, command.Exit{}, mustParse(t, "exit"))
	assert.Equal(t, command.List{}, mustParse(t, "list"))
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "fitadd", suggest("fitad"))
	assert.Equal(t, "delete", suggest("deletee"))
	assert.Equal(t, "", suggest("zzzz"))
}

func TestCommandWord(t *testing.T) {
	assert.Equal(t, "add", CommandWord("  add n/John p/123"))
	assert.Equal(t, "", CommandWord(""))
}
