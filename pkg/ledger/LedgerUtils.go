package ledger

import "sort"


//=========================================== Ledger Utils


/*
	order entries by slot --> term first, then sequence within the term

	term/sequence pairs are immutable once assigned, so the ordering of already
	committed entries can never change between two calls
*/

func SortBySlot(entries []LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Term != entries[j].Term { return entries[i].Term < entries[j].Term }
		return entries[i].Sequence < entries[j].Sequence
	})
}
