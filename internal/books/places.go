package books

import "strings"

// publisherPlaces maps well-known academic and trade publishers to
// their cities. Book APIs rarely return a place of publication, and
// Chicago-style citations need one. First match wins, so entries are
// ordered and more specific names come before generic ones.
var publisherPlaces = []struct {
	name  string
	place string
}{
	// Ivy League and major US academic presses
	{"Harvard University Press", "Cambridge, MA"},
	{"MIT Press", "Cambridge, MA"},
	{"Yale University Press", "New Haven"},
	{"Princeton University Press", "Princeton"},
	{"Stanford University Press", "Stanford"},
	{"University of California Press", "Berkeley"},
	{"University of Chicago Press", "Chicago"},
	{"Columbia University Press", "New York"},
	{"Cornell University Press", "Ithaca"},
	{"University of Pennsylvania Press", "Philadelphia"},
	{"Johns Hopkins University Press", "Baltimore"},
	{"Duke University Press", "Durham, NC"},
	{"University of North Carolina Press", "Chapel Hill"},
	{"University of Virginia Press", "Charlottesville"},
	{"University of Michigan Press", "Ann Arbor"},
	{"University of Wisconsin Press", "Madison"},
	{"University of Illinois Press", "Urbana"},
	{"Indiana University Press", "Bloomington"},
	{"University of Texas Press", "Austin"},
	{"University of Washington Press", "Seattle"},

	// UK academic
	{"Oxford University Press", "Oxford"},
	{"Cambridge University Press", "Cambridge"},
	{"Routledge", "London"},
	{"Bloomsbury", "London"},
	{"Palgrave Macmillan", "London"},

	// Trade houses
	{"Penguin", "New York"},
	{"Random House", "New York"},
	{"HarperCollins", "New York"},
	{"Simon & Schuster", "New York"},
	{"Farrar, Straus and Giroux", "New York"},
	{"W. W. Norton", "New York"},
	{"Knopf", "New York"},
	{"Basic Books", "New York"},
	{"Free Press", "New York"},
	{"Vintage", "New York"},
	{"Doubleday", "New York"},
	{"Scribner", "New York"},
	{"Little, Brown", "Boston"},
	{"Beacon Press", "Boston"},
	{"Houghton Mifflin", "Boston"},
}

// ResolvePlace fills in a missing place of publication from the
// publisher table. A place the API already supplied wins.
func ResolvePlace(publisher, current string) string {
	if current != "" {
		return current
	}
	if publisher == "" {
		return ""
	}

	lower := strings.ToLower(publisher)
	for _, e := range publisherPlaces {
		if strings.Contains(lower, strings.ToLower(e.name)) {
			return e.place
		}
	}
	return ""
}
