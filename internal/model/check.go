package model

import "fmt"

// Issue is a problem found by Check.
type Issue struct {
	Index   int    `json:"index" yaml:"index"`
	Param   string `json:"param" yaml:"param"`
	Problem string `json:"problem" yaml:"problem"`
}

// Check reports parameters that lookups or tools will mishandle: empty ids,
// ids hidden behind an earlier parameter with the same id, repeated
// (id, type) keys and unknown type keys. It does not modify the list.
func Check(l *List) []Issue {
	var issues []Issue
	firstByID := map[string]int{}
	firstByKey := map[ParamKey]int{}

	for i, p := range l.params {
		if p.owner != l.id {
			issues = append(issues, Issue{i, p.Title(), fmt.Sprintf("owned by another list (%s)", p.owner)})
		}
		if p.data.ID == "" {
			issues = append(issues, Issue{i, p.Title(), "empty id"})
		}
		if p.data.TypeKey == "" {
			issues = append(issues, Issue{i, p.Title(), "no type"})
		} else if !ValidTypeKey(p.data.TypeKey) {
			issues = append(issues, Issue{i, p.Title(), fmt.Sprintf("%s: %q", ErrInvalidTypeKey, p.data.TypeKey)})
		}

		if j, ok := firstByKey[p.Key()]; ok {
			issues = append(issues, Issue{i, p.Title(), fmt.Sprintf("duplicates parameter %d", j)})
		} else {
			firstByKey[p.Key()] = i
			if j, ok := firstByID[p.data.ID]; ok && p.data.ID != "" {
				issues = append(issues, Issue{i, p.Title(), fmt.Sprintf("id hidden by parameter %d", j)})
			}
		}
		if _, ok := firstByID[p.data.ID]; !ok {
			firstByID[p.data.ID] = i
		}
	}
	return issues
}
