package search

import "unicode/utf8"

// Transaction labels used by the replace commands.
const (
	LabelReplace    = "replace"
	LabelReplaceAll = "replace all"
)

// PlanReplace returns the transaction that overwrites the first match with
// replacement. The current index is not consulted. ok is false when there is
// nothing to do.
func PlanReplace(matches []Range, replacement string) (tx Transaction, ok bool) {
	if len(matches) == 0 || replacement == "" {
		return Transaction{}, false
	}
	first := matches[0]
	return Transaction{
		Label: LabelReplace,
		Edits: []Edit{{Text: replacement, From: first.From, To: first.To}},
	}, true
}

// PlanReplaceAll returns one transaction overwriting every match with
// replacement. Each edit is rebased by the net length change of the edits
// before it, so it addresses the document as those edits leave it.
func PlanReplaceAll(matches []Range, replacement string) (tx Transaction, ok bool) {
	if len(matches) == 0 {
		return Transaction{}, false
	}

	work := make([]Range, len(matches))
	copy(work, matches)
	replLen := utf8.RuneCountInString(replacement)

	edits := make([]Edit, 0, len(work))
	offset := 0
	for i := range work {
		cur := work[i]
		edits = append(edits, Edit{Text: replacement, From: cur.From, To: cur.To})

		// Positive when the replacement is shorter than the match.
		delta := cur.Len() - replLen
		offset += delta

		if i+1 < len(work) {
			next := work[i+1]
			work[i+1] = Range{From: next.From - offset, To: next.To - offset}
		}
	}
	return Transaction{Label: LabelReplaceAll, Edits: edits}, true
}
