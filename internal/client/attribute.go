package client

import "strings"

// Field names a searchable client attribute.
type Field string

const (
	FieldName      Field = "name"
	FieldPhone     Field = "phone"
	FieldEmail     Field = "email"
	FieldAddress   Field = "address"
	FieldNote      Field = "note"
	FieldTags      Field = "tags"
	FieldWeight    Field = "weight"
	FieldHeight    Field = "height"
	FieldExercises Field = "exercises"
)

// Fields lists every searchable field in display order.
var Fields = []Field{
	FieldName, FieldPhone, FieldEmail, FieldAddress, FieldNote,
	FieldTags, FieldWeight, FieldHeight, FieldExercises,
}

// Value is a client attribute. The variants are Text, TagSet, Series and
// ExerciseSet; no other type implements it.
type Value interface {
	IsEmpty() bool
	value()
}

// Text is a free-text attribute such as a name or an address.
type Text string

func (t Text) IsEmpty() bool         { return strings.TrimSpace(string(t)) == "" }
func (t Text) Equal(other Text) bool { return t == other }

func (Text) value()        {}
func (TagSet) value()      {}
func (Series) value()      {}
func (ExerciseSet) value() {}

// Query is a search term for one attribute. The variants are TextQuery,
// TagQuery, RangeQuery and ExerciseQuery.
type Query interface {
	IsEmpty() bool
	query()
}

// TextQuery matches Text by case-insensitive substring containment.
type TextQuery struct {
	Text string
}

// TagQuery matches a TagSet containing every listed tag.
type TagQuery struct {
	Tags []string
}

// RangeQuery matches a Series whose latest value lies in [Low, High].
// An unbounded RangeQuery is the empty sentinel.
type RangeQuery struct {
	Low, High float64
	Bounded   bool
}

// ExerciseQuery matches an ExerciseSet containing every listed exercise name.
type ExerciseQuery struct {
	Names []string
}

// NewRange returns a bounded range query.
func NewRange(low, high float64) RangeQuery {
	return RangeQuery{Low: low, High: high, Bounded: true}
}

func (q TextQuery) IsEmpty() bool     { return strings.TrimSpace(q.Text) == "" }
func (q TagQuery) IsEmpty() bool      { return len(q.Tags) == 0 }
func (q RangeQuery) IsEmpty() bool    { return !q.Bounded }
func (q ExerciseQuery) IsEmpty() bool { return len(q.Names) == 0 }

func (TextQuery) query()     {}
func (TagQuery) query()      {}
func (RangeQuery) query()    {}
func (ExerciseQuery) query() {}

// Contains reports whether x lies within the range, inclusive.
func (q RangeQuery) Contains(x float64) bool {
	return q.Low <= x && x <= q.High
}

// Matches tests an attribute against a query. A query of the wrong kind for
// the attribute never matches.
func Matches(v Value, q Query) bool {
	switch v := v.(type) {
	case Text:
		tq, ok := q.(TextQuery)
		return ok && containsFold(string(v), tq.Text)

	case TagSet:
		tq, ok := q.(TagQuery)
		if !ok {
			return false
		}
		for _, tag := range tq.Tags {
			if !v.Has(tag) {
				return false
			}
		}
		return true

	case Series:
		rq, ok := q.(RangeQuery)
		if !ok {
			return false
		}
		latest, has := v.Latest()
		if !has {
			return false
		}
		return !rq.Bounded || rq.Contains(latest.Value)

	case ExerciseSet:
		eq, ok := q.(ExerciseQuery)
		if !ok {
			return false
		}
		for _, name := range eq.Names {
			if !v.Has(name) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal compares two attributes of the same variant.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Text:
		b, ok := b.(Text)
		return ok && a.Equal(b)
	case TagSet:
		b, ok := b.(TagSet)
		return ok && a.Equal(b)
	case Series:
		b, ok := b.(Series)
		return ok && a.Equal(b)
	case ExerciseSet:
		b, ok := b.(ExerciseSet)
		return ok && a.Equal(b)
	}
	return false
}
