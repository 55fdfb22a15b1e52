package catalog

import (
	"sort"

	"datanorm/internal/util"
)

// SourceFile is one catalog attachment: raw bytes plus the free-text
// comment that decides supplier membership.
type SourceFile struct {
	Name    string
	Comment string
	Data    []byte
}

// SupplierGroup is the set of files sharing a normalized comment,
// treated as one supplier's data set. The ID is the normalized comment
// itself, which keeps misgrouping visible in diagnostics.
type SupplierGroup struct {
	ID      string
	Comment string
	Files   []SourceFile
}

// GroupFiles partitions attachments into supplier groups. Comment
// comparison is case- and whitespace-insensitive; within a group, files
// contribute in ascending name order so rebuilds are deterministic.
func GroupFiles(files []SourceFile) []SupplierGroup {
	byID := map[string]*SupplierGroup{}
	order := []string{}

	for _, file := range files {
		id := util.NormalizeComment(file.Comment)
		if id == "" {
			continue
		}
		group, ok := byID[id]
		if !ok {
			group = &SupplierGroup{ID: id, Comment: util.CollapseSpaces(file.Comment)}
			byID[id] = group
			order = append(order, id)
		}
		group.Files = append(group.Files, file)
	}

	sort.Strings(order)
	out := make([]SupplierGroup, 0, len(order))
	for _, id := range order {
		group := byID[id]
		sort.Slice(group.Files, func(i, j int) bool { return group.Files[i].Name < group.Files[j].Name })
		out = append(out, *group)
	}
	return out
}
