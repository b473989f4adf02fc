package action

import (
	"regexp"
	"strings"
)

var newlineRun = regexp.MustCompile(`[\r\n]+`)

// NormalizeTitle collapses any run of newline characters to a single
// space. Raw titles may contain embedded newlines from upstream lint
// messages and surfaces render one item per line.
func NormalizeTitle(title string) string {
	return newlineRun.ReplaceAllString(title, " ")
}

// EscapeTitle rewrites carriage returns and newlines as visible
// two-character sequences for single-line display in the flat chooser.
func EscapeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", `\r`)
	title = strings.ReplaceAll(title, "\n", `\n`)
	return title
}

// Group is a named cluster of related actions. Index is the group row's
// 1-based display index on the primary surface, zero until assigned.
type Group struct {
	Name  string
	Items []*Item
	Index int
}

// Partitioned is the output of Partition: items split into named groups
// and an ordered ungrouped remainder. Group order is first-seen
// insertion order, so row order is stable across runs.
type Partitioned struct {
	groups     map[string]*Group
	groupOrder []string

	// Ungrouped items in aggregation order.
	Ungrouped []*Item
}

// Partition splits items into grouped and ungrouped buckets. Membership
// is determined solely by the presence of a non-empty group label on the
// action; labels are case-sensitive and not normalized. Titles are left
// raw; rendering normalizes or escapes them per surface.
func Partition(items []*Item) *Partitioned {
	p := &Partitioned{groups: make(map[string]*Group)}

	for _, it := range items {
		name := it.Group()
		if name == "" {
			p.Ungrouped = append(p.Ungrouped, it)
			continue
		}
		g, ok := p.groups[name]
		if !ok {
			g = &Group{Name: name}
			p.groups[name] = g
			p.groupOrder = append(p.groupOrder, name)
		}
		g.Items = append(g.Items, it)
	}

	return p
}

// Groups returns the groups in first-seen order.
func (p *Partitioned) Groups() []*Group {
	out := make([]*Group, 0, len(p.groupOrder))
	for _, name := range p.groupOrder {
		out = append(out, p.groups[name])
	}
	return out
}

// Group returns the named group, or nil.
func (p *Partitioned) Group(name string) *Group {
	return p.groups[name]
}

// GroupCount returns the number of groups.
func (p *Partitioned) GroupCount() int {
	return len(p.groupOrder)
}

// Empty reports whether the partition holds no items at all.
func (p *Partitioned) Empty() bool {
	return len(p.groupOrder) == 0 && len(p.Ungrouped) == 0
}

// All returns every item, grouped buckets first in group order, then
// the ungrouped remainder.
func (p *Partitioned) All() []*Item {
	var out []*Item
	for _, name := range p.groupOrder {
		out = append(out, p.groups[name].Items...)
	}
	out = append(out, p.Ungrouped...)
	return out
}

// AssignPrimaryIndices numbers the primary surface rows: groups get
// 1..G in group order, ungrouped items follow with G+1..G+U. The
// contiguous numbering is what row-under-cursor lookup relies on.
func (p *Partitioned) AssignPrimaryIndices() {
	idx := 1
	for _, name := range p.groupOrder {
		p.groups[name].Index = idx
		idx++
	}
	for _, it := range p.Ungrouped {
		it.Index = idx
		idx++
	}
}

// AssignMemberIndices numbers a group's member rows 1..N, local to the
// secondary surface rendering them.
func (g *Group) AssignMemberIndices() {
	for i, it := range g.Items {
		it.Index = i + 1
	}
}
