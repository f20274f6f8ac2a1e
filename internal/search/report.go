package search

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Angles are printed with a fixed 5 decimal places. Earlier revisions of
// the output format used 2; 5 separates near-ties and is what we commit to.
const anglePrecision = 5

// WriteResult emits the three-field report for one query:
//
//	Query: <literal query text>
//	<candidate IDs, ascending, space-separated>
//	<docID> <angle>        (one line per ranked candidate, ascending angle)
//
// An empty candidate set leaves the second line empty and produces no
// ranking lines.
func WriteResult(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "Query: %s\n", res.Query); err != nil {
		return fmt.Errorf("writing query line: %w", err)
	}
	ids := make([]string, len(res.Candidates))
	for i, id := range res.Candidates {
		ids[i] = strconv.Itoa(id)
	}
	if _, err := fmt.Fprintln(w, strings.Join(ids, " ")); err != nil {
		return fmt.Errorf("writing candidate line: %w", err)
	}
	for _, da := range res.Ranked {
		if _, err := fmt.Fprintf(w, "%d %.*f\n", da.DocID, anglePrecision, da.Angle); err != nil {
			return fmt.Errorf("writing ranking line: %w", err)
		}
	}
	return nil
}
