package notifier

import (
	"fmt"
	"strings"

	"paper_digest/internal/domain"
)

// BuildBody renders the plain-text digest: a "New papers" section followed
// by the previously-seen sample. The "no new papers" notice is explicit so
// a subscriber can tell an empty day from a broken run.
func BuildBody(newEntries, recent []domain.Entry) string {
	var sb strings.Builder

	if len(newEntries) == 0 {
		sb.WriteString("New papers: nothing new today.\n")
	} else {
		sb.WriteString("New papers:\n\n")
		writeEntryList(&sb, newEntries)
	}

	if len(recent) > 0 {
		sb.WriteString("\n\nPreviously seen:\n\n")
		writeEntryList(&sb, recent)
	}

	return sb.String()
}

func writeEntryList(sb *strings.Builder, entries []domain.Entry) {
	for i, e := range entries {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(sb, "%d. %s [%s]\n%s", i+1, e.Title, e.SourceName, e.URL)
		if len(e.MatchedKeywords) > 0 {
			fmt.Fprintf(sb, "\nkeywords: %s", strings.Join(e.MatchedKeywords, ", "))
		}
	}
	sb.WriteString("\n")
}
