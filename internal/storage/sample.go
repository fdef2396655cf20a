package storage

import (
	"time"

	"github.com/fitbook/fitbook/internal/client"
)

// SampleClients returns the records seeded on first run. Measurements are
// stamped with now so the data looks fresh.
func SampleClients(now time.Time) []*client.Client {
	now = now.Truncate(time.Second)
	week := 7 * 24 * time.Hour

	series := func(values ...float64) client.Series {
		var s client.Series
		for i, v := range values {
			s = s.Append(now.Add(-time.Duration(len(values)-1-i)*week), v)
		}
		return s
	}

	return []*client.Client{
		client.New(client.Details{
			Name:    "Alex Yeoh",
			Phone:   "87438807",
			Email:   "alexyeoh@example.com",
			Address: "Blk 30 Geylang Street 29, #06-40",
			Note:    "Training for a half marathon.",
			Tags:    client.NewTagSet("friends"),
			Weight:  series(78, 77.2, 76.5),
			Height:  series(178),
			Exercises: client.NewExerciseSet(
				client.Exercise{Name: "Squats", Sets: 4, Reps: 10, Rest: 90},
				client.Exercise{Name: "Lunges", Sets: 3, Reps: 12, Rest: 60},
			),
		}),
		client.New(client.Details{
			Name:    "Bernice Yu",
			Phone:   "99272758",
			Email:   "berniceyu@example.com",
			Address: "Blk 30 Lorong 3 Serangoon Gardens, #07-18",
			Tags:    client.NewTagSet("colleagues", "friends"),
			Weight:  series(61, 60.4),
			Height:  series(165),
		}),
		client.New(client.Details{
			Name:    "Charlotte Oliveiro",
			Phone:   "93210283",
			Email:   "charlotte@example.com",
			Address: "Blk 11 Ang Mo Kio Street 74, #11-04",
			Tags:    client.NewTagSet("neighbours"),
			Exercises: client.NewExerciseSet(
				client.Exercise{Name: "Bench press", Sets: 5, Reps: 5, Rest: 180},
			),
		}),
		client.New(client.Details{
			Name:    "David Li",
			Phone:   "91031282",
			Email:   "lidavid@example.com",
			Address: "Blk 436 Serangoon Gardens Street 26, #16-43",
			Note:    "Knee injury in 2023, avoid deep squats.",
			Tags:    client.NewTagSet("family"),
			Weight:  series(92, 90.5, 89.8, 88),
			Height:  series(183),
		}),
		client.New(client.Details{
			Name:    "Irfan Ibrahim",
			Phone:   "92492021",
			Email:   "irfan@example.com",
			Address: "Blk 47 Tampines Street 20, #17-35",
			Tags:    client.NewTagSet("classmates"),
		}),
		client.New(client.Details{
			Name:    "Roy Balakrishnan",
			Phone:   "92624417",
			Email:   "royb@example.com",
			Address: "Blk 45 Aljunied Street 85, #11-31",
			Tags:    client.NewTagSet("colleagues"),
			Height:  series(171),
		}),
	}
}
