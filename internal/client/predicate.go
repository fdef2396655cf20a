package client

// Predicate tests a client.
type Predicate func(*Client) bool

// ShowAll accepts every client.
func ShowAll(*Client) bool { return true }

// Criterion is a query on one field.
type Criterion struct {
	Field Field
	Query Query
}

// FieldPredicate builds the test for a field the user asked about. An empty
// query asks for clients that have a value in the field.
func FieldPredicate(f Field, q Query) Predicate {
	if q == nil || q.IsEmpty() {
		return func(c *Client) bool { return !c.Value(f).IsEmpty() }
	}
	return func(c *Client) bool { return Matches(c.Value(f), q) }
}

// And combines predicates conjunctively. With no predicates it accepts everything.
func And(preds ...Predicate) Predicate {
	ps := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			ps = append(ps, p)
		}
	}
	return func(c *Client) bool {
		for _, p := range ps {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// Compose builds one predicate per searchable field and ANDs them. Fields
// missing from criteria contribute ShowAll. Criteria naming the same field
// are all applied.
func Compose(criteria ...Criterion) Predicate {
	byField := make(map[Field][]Predicate, len(criteria))
	for _, cr := range criteria {
		byField[cr.Field] = append(byField[cr.Field], FieldPredicate(cr.Field, cr.Query))
	}

	preds := make([]Predicate, 0, len(Fields))
	for _, f := range Fields {
		ps, ok := byField[f]
		if !ok {
			preds = append(preds, ShowAll)
			continue
		}
		preds = append(preds, ps...)
	}
	return And(preds...)
}

// Filter returns the clients accepted by p, in their original order.
func Filter(clients []*Client, p Predicate) []*Client {
	if p == nil {
		p = ShowAll
	}
	out := make([]*Client, 0, len(clients))
	for _, c := range clients {
		if p(c) {
			out = append(out, c)
		}
	}
	return out
}
