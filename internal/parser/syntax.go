package parser

// Prefix introduces an argument value, e.g. "n/" for a name.
type Prefix string

const (
	PrefixName     Prefix = "n/"
	PrefixPhone    Prefix = "p/"
	PrefixEmail    Prefix = "e/"
	PrefixAddress  Prefix = "a/"
	PrefixNote     Prefix = "nt/"
	PrefixTag      Prefix = "t/"
	PrefixWeight   Prefix = "w/"
	PrefixHeight   Prefix = "h/"
	PrefixExercise Prefix = "ex/"
	PrefixSets     Prefix = "s/"
	PrefixReps     Prefix = "r/"
	PrefixRest     Prefix = "rt/"
	PrefixAll      Prefix = "/all"
	PrefixConfirm  Prefix = "/confirm"
)
