package command

// Command words.
const (
	WordAdd       = "add"
	WordEdit      = "edit"
	WordDelete    = "delete"
	WordFind      = "find"
	WordList      = "list"
	WordWeight    = "weight"
	WordHeight    = "height"
	WordNote      = "note"
	WordEditNote  = "editnote"
	WordFitAdd    = "fitadd"
	WordFitDelete = "fitdelete"
	WordClear     = "clear"
	WordHelp      = "help"
	WordExit      = "exit"
)

// Words lists every command word.
var Words = []string{
	WordAdd, WordEdit, WordDelete, WordFind, WordList, WordWeight, WordHeight,
	WordNote, WordEditNote, WordFitAdd, WordFitDelete, WordClear, WordHelp, WordExit,
}

// Usage texts, echoed with parse errors.
const (
	UsageAdd = WordAdd + ": Adds a client to the client book. " +
		"Parameters: n/NAME p/PHONE [e/EMAIL] [a/ADDRESS] [nt/NOTE] [w/WEIGHT] [h/HEIGHT] [t/TAG]...\n" +
		"Example: add n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2, #02-25 t/friends"

	UsageEdit = WordEdit + ": Edits the client identified by the index number used in the displayed list. " +
		"Existing values will be overwritten by the input values. w/ and h/ replace the latest entry; " +
		"w/0 or an empty w/ removes it.\n" +
		"Parameters: INDEX (must be a positive integer) [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [nt/NOTE] " +
		"[w/WEIGHT] [h/HEIGHT] [t/TAG]...\n" +
		"Example: edit 1 p/91234567 e/johndoe@example.com"

	UsageDelete = WordDelete + ": Deletes the client identified by the index number used in the displayed list.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: delete 1"

	UsageFind = WordFind + ": Finds all clients matching every given filter and displays them as a list. " +
		"Bare keywords search names.\n" +
		"Parameters: [KEYWORDS] [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [nt/NOTE] [t/TAG]... " +
		"[w/LOW, HIGH] [h/LOW, HIGH] [ex/EXERCISE]...\n" +
		"Example: find n/alice t/friends w/50, 70"

	UsageList = WordList + ": Lists all clients."

	UsageWeight = WordWeight + ": Records a weight (kg) for the client identified by the index number. " +
		"Omit the value or give 0 to remove the latest entry.\n" +
		"Parameters: INDEX (must be a positive integer) [w/WEIGHT]\n" +
		"Example: weight 1 w/80"

	UsageHeight = WordHeight + ": Records a height (cm) for the client identified by the index number. " +
		"Omit the value or give 0 to remove the latest entry.\n" +
		"Parameters: INDEX (must be a positive integer) [h/HEIGHT] (w/HEIGHT is also accepted)\n" +
		"Example: height 1 h/180"

	UsageNote = WordNote + ": Replaces the note of the client identified by the index number. " +
		"Omit the text to clear the note.\n" +
		"Parameters: INDEX (must be a positive integer) [TEXT]\n" +
		"Example: note 1 Prefers morning sessions"

	UsageEditNote = WordEditNote + ": Loads the current note of the client identified by the index number for editing.\n" +
		"Parameters: INDEX (must be a positive integer)\n" +
		"Example: editnote 1"

	UsageFitAdd = WordFitAdd + ": Adds or overwrites an exercise for the client identified by the index number.\n" +
		"Parameters: INDEX (must be a positive integer) n/EXERCISE [s/SETS] [r/REPS] [rt/REST_SECONDS]\n" +
		"Example: fitadd 1 n/squats s/3 r/10 rt/60"

	UsageFitDelete = WordFitDelete + ": Deletes one exercise, or all of them, from the client identified by the index number.\n" +
		"Parameters: INDEX (must be a positive integer) (n/EXERCISE | /all)\n" +
		"Example: fitdelete 1 n/squats"

	UsageClear = WordClear + ": Deletes every client. Requires confirmation.\n" +
		"Parameters: [/confirm]\n" +
		"Example: clear /confirm"

	UsageHelp = WordHelp + ": Shows program usage instructions."

	UsageExit = WordExit + ": Exits the program."
)

// HelpText lists every command's usage.
func HelpText() string {
	out := ""
	for i, u := range []string{
		UsageAdd, UsageEdit, UsageDelete, UsageFind, UsageList, UsageWeight, UsageHeight,
		UsageNote, UsageEditNote, UsageFitAdd, UsageFitDelete, UsageClear, UsageHelp, UsageExit,
	} {
		if i > 0 {
			out += "\n\n"
		}
		out += u
	}
	return out
}
