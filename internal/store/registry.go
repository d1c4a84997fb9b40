package store

import (
	"fmt"
	"strings"
)

// Move directions accepted by MoveGroup and MoveLink. Any other value is
// treated as a boundary condition (no move).
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// Lookup rules, kept exactly as the legacy behavior: uniqueness checks on
// add/rename are case-insensitive, while delete and positional lookups match
// names exactly. Duplicate link names inside one group are tolerated; lookups
// act on the first match and deletes remove every match.

// FindGroup returns the first group with an exact name match.
func (d *Document) FindGroup(name string) *Group {
	for i := range d.Groups {
		if d.Groups[i].Name == name {
			return &d.Groups[i]
		}
	}
	return nil
}

// AddGroup appends a new empty group.
func (d *Document) AddGroup(name, icon string) error {
	if name == "" {
		return fmt.Errorf("%w: group name is required", ErrValidation)
	}
	for _, g := range d.Groups {
		if strings.EqualFold(g.Name, name) {
			return fmt.Errorf("%w: group %q", ErrDuplicateName, name)
		}
	}
	d.Groups = append(d.Groups, Group{Name: name, Icon: icon, Links: []Link{}})
	return nil
}

// DeleteGroup removes every group whose name matches exactly. It reports
// whether anything was removed; a miss is not an error.
func (d *Document) DeleteGroup(name string) bool {
	kept := d.Groups[:0]
	for _, g := range d.Groups {
		if g.Name != name {
			kept = append(kept, g)
		}
	}
	removed := len(kept) < len(d.Groups)
	d.Groups = kept
	return removed
}

// RenameGroup updates a group's name and icon in place, preserving its
// position. Renaming a group to its own name (any casing) is allowed.
func (d *Document) RenameGroup(oldName, newName, icon string) error {
	if oldName == "" || newName == "" {
		return fmt.Errorf("%w: group names are required", ErrValidation)
	}
	target := d.FindGroup(oldName)
	if target == nil {
		return ErrGroupNotFound
	}
	if !strings.EqualFold(newName, oldName) {
		for _, g := range d.Groups {
			if strings.EqualFold(g.Name, newName) {
				return fmt.Errorf("%w: group %q", ErrDuplicateName, newName)
			}
		}
	}
	target.Name = newName
	target.Icon = icon
	return nil
}

// MoveGroup swaps the named group with its neighbor in the given direction.
// It returns false (and no error) when the group is already at the boundary
// or the direction is unrecognized.
func (d *Document) MoveGroup(name, direction string) (bool, error) {
	idx := -1
	for i := range d.Groups {
		if d.Groups[i].Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, ErrGroupNotFound
	}

	switch {
	case direction == MoveUp && idx > 0:
		d.Groups[idx], d.Groups[idx-1] = d.Groups[idx-1], d.Groups[idx]
		return true, nil
	case direction == MoveDown && idx < len(d.Groups)-1:
		d.Groups[idx], d.Groups[idx+1] = d.Groups[idx+1], d.Groups[idx]
		return true, nil
	}
	return false, nil
}

// AddLink appends a link to the named group. Duplicate link names within the
// group are not rejected.
func (d *Document) AddLink(groupName string, link Link) error {
	if link.Name == "" || link.URL == "" {
		return fmt.Errorf("%w: link name and URL are required", ErrValidation)
	}
	group := d.FindGroup(groupName)
	if group == nil {
		return ErrGroupNotFound
	}
	group.Links = append(group.Links, link)
	return nil
}

// DeleteLink removes every link in the group whose name matches exactly.
// It reports whether anything was removed.
func (d *Document) DeleteLink(groupName, linkName string) (bool, error) {
	group := d.FindGroup(groupName)
	if group == nil {
		return false, ErrGroupNotFound
	}
	kept := group.Links[:0]
	for _, l := range group.Links {
		if l.Name != linkName {
			kept = append(kept, l)
		}
	}
	removed := len(kept) < len(group.Links)
	group.Links = kept
	return removed, nil
}

// EditLink overwrites the first link matching oldName. The icon is replaced
// only when newIcon is non-nil; otherwise the existing icon is retained.
func (d *Document) EditLink(groupName, oldName, newName, newURL, newDescription string, newIcon *string) error {
	if newName == "" || newURL == "" {
		return fmt.Errorf("%w: link name and URL are required", ErrValidation)
	}
	group := d.FindGroup(groupName)
	if group == nil {
		return ErrGroupNotFound
	}
	for i := range group.Links {
		if group.Links[i].Name == oldName {
			group.Links[i].Name = newName
			group.Links[i].URL = newURL
			group.Links[i].Description = newDescription
			if newIcon != nil {
				group.Links[i].Icon = newIcon
			}
			return nil
		}
	}
	return ErrLinkNotFound
}

// MoveLink swaps the named link with its neighbor inside its group, with the
// same boundary semantics as MoveGroup.
func (d *Document) MoveLink(groupName, linkName, direction string) (bool, error) {
	group := d.FindGroup(groupName)
	if group == nil {
		return false, ErrGroupNotFound
	}
	idx := -1
	for i := range group.Links {
		if group.Links[i].Name == linkName {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, ErrLinkNotFound
	}

	switch {
	case direction == MoveUp && idx > 0:
		group.Links[idx], group.Links[idx-1] = group.Links[idx-1], group.Links[idx]
		return true, nil
	case direction == MoveDown && idx < len(group.Links)-1:
		group.Links[idx], group.Links[idx+1] = group.Links[idx+1], group.Links[idx]
		return true, nil
	}
	return false, nil
}

// AddFeed appends a feed subscription.
func (d *Document) AddFeed(name, url string) error {
	if name == "" || url == "" {
		return fmt.Errorf("%w: feed name and URL are required", ErrValidation)
	}
	for _, f := range d.RSSFeeds {
		if strings.EqualFold(f.Name, name) {
			return fmt.Errorf("%w: feed %q", ErrDuplicateName, name)
		}
	}
	d.RSSFeeds = append(d.RSSFeeds, FeedSubscription{Name: name, URL: url})
	return nil
}

// DeleteFeed removes every feed whose name matches exactly and reports
// whether anything was removed.
func (d *Document) DeleteFeed(name string) bool {
	kept := d.RSSFeeds[:0]
	for _, f := range d.RSSFeeds {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	removed := len(kept) < len(d.RSSFeeds)
	d.RSSFeeds = kept
	return removed
}
