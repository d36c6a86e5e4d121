package tableview

import "encoding/json"

// Selection is a set of row ids. It lives outside the pipeline: ids stay
// selected across page, filter and search changes, so bulk actions can span
// pages. There is no upper bound on its size.
type Selection map[string]bool

func (s Selection) Has(id string) bool {
	return s[id]
}

func (s Selection) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}

// Serialized as a plain id list, membership order is not significant.
func (s Selection) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	ids := []string{}
	err := json.Unmarshal(data, &ids)
	if err != nil {
		return err
	}
	*s = Selection{}
	for _, id := range ids {
		(*s)[id] = true
	}
	return nil
}

func (s Selection) clone() Selection {
	next := make(Selection, len(s))
	for id := range s {
		next[id] = true
	}
	return next
}

// ToggleRow adds the id if absent and removes it if present.
func ToggleRow(state State, id string) State {
	next := state.Selection.clone()
	if next[id] {
		delete(next, id)
	} else {
		next[id] = true
	}
	state.Selection = next
	return state
}

// ToggleAllOnPage implements "select remaining": if every visible id is
// already selected, exactly those ids are removed; otherwise every visible id
// is added (union, not replace). Off-page selections are never dropped.
func ToggleAllOnPage(state State, visibleIDs []string) State {
	next := state.Selection.clone()
	if AllOnPageSelected(state.Selection, visibleIDs) {
		for _, id := range visibleIDs {
			delete(next, id)
		}
	} else {
		for _, id := range visibleIDs {
			next[id] = true
		}
	}
	state.Selection = next
	return state
}

// AllOnPageSelected reports the "select all" checkbox state: true iff the
// page is non-empty and every visible id is selected.
func AllOnPageSelected(selection Selection, visibleIDs []string) bool {
	if len(visibleIDs) == 0 {
		return false
	}
	for _, id := range visibleIDs {
		if !selection[id] {
			return false
		}
	}
	return true
}
