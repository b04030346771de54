package bibtex

// Destination publication types.
const (
	TypeJournal     = "journal"
	TypeConference  = "conference"
	TypePreprint    = "preprint"
	TypeThesis      = "thesis"
	TypeBookChapter = "book-chapter"
)

var publicationTypes = map[string]string{
	"article":       TypeJournal,
	"inproceedings": TypeConference,
	"conference":    TypeConference,
	"misc":          TypePreprint,
	"unpublished":   TypePreprint,
	"phdthesis":     TypeThesis,
	"mastersthesis": TypeThesis,
	"incollection":  TypeBookChapter,
	"inbook":        TypeBookChapter,
}

// PublicationType maps a bibliography entry type onto the destination
// taxonomy. Unknown types fall back to "conference".
func PublicationType(entryType string) string {
	if t, ok := publicationTypes[entryType]; ok {
		return t
	}
	return TypeConference
}
