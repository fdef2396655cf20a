package ops

import "github.com/fitbook/fitbook/internal/client"

// ClientView is the JSON shape of a client in CLI and MCP output.
// Index is the 1-based position in the list it was taken from.
type ClientView struct {
	Index     int            `json:"index"`
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email,omitempty"`
	Address   string         `json:"address,omitempty"`
	Note      string         `json:"note,omitempty"`
	Tags      []string       `json:"tags"`
	Weight    *float64       `json:"weight,omitempty"`
	Height    *float64       `json:"height,omitempty"`
	Exercises []ExerciseView `json:"exercises"`
}

// ExerciseView is one exercise in a ClientView. Rest is in seconds.
type ExerciseView struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
	Rest int    `json:"rest"`
}

// ListOutput is the result of listing clients.
type ListOutput struct {
	Clients []ClientView `json:"clients"`
	Shown   int          `json:"shown"`
	Total   int          `json:"total"`
}

// ViewOf builds the view of c at 1-based index.
func ViewOf(index int, c *client.Client) ClientView {
	v := ClientView{
		Index:     index,
		ID:        c.ID(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Email:     c.Email(),
		Address:   c.Address(),
		Note:      c.Note(),
		Tags:      c.Tags().Values(),
		Weight:    latestValue(c.Weight()),
		Height:    latestValue(c.Height()),
		Exercises: []ExerciseView{},
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	for _, e := range c.Exercises().Items() {
		v.Exercises = append(v.Exercises, ExerciseView{Name: e.Name, Sets: e.Sets, Reps: e.Reps, Rest: e.Rest})
	}
	return v
}

// List returns views of shown, numbered from 1, with total as the full list size.
func List(shown []*client.Client, total int) ListOutput {
	out := ListOutput{Clients: make([]ClientView, len(shown)), Shown: len(shown), Total: total}
	for i, c := range shown {
		out.Clients[i] = ViewOf(i+1, c)
	}
	return out
}

func latestValue(s client.Series) *float64 {
	o, ok := s.Latest()
	if !ok {
		return nil
	}
	v := o.Value
	return &v
}
