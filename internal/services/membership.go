package services

import "slices"

// addMember appends id unless it is already present. It reports whether id was added.
func addMember(ids []string, id string) ([]string, bool) {
	if slices.Contains(ids, id) {
		return ids, false
	}
	return append(ids, id), true
}

// removeMember drops the first occurrence of id. It reports whether id was present.
func removeMember(ids []string, id string) ([]string, bool) {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids, false
	}
	return slices.Delete(ids, i, i+1), true
}

// toggleMember removes id if present and appends it otherwise. It reports whether id is now a member.
func toggleMember(ids []string, id string) ([]string, bool) {
	if out, removed := removeMember(ids, id); removed {
		return out, false
	}
	return append(ids, id), true
}

// removeAll drops every occurrence of id.
func removeAll(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
