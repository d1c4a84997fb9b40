package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mightywomble/linksdashboard/internal/store"
)

// allowedIconExts is the extension allow-list for uploaded link icons.
var allowedIconExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
}

// LinksHandler mutates the links inside a group, including icon uploads.
type LinksHandler struct {
	store     *store.Store
	uploadDir string
}

func NewLinksHandler(st *store.Store, uploadDir string) *LinksHandler {
	return &LinksHandler{store: st, uploadDir: uploadDir}
}

// Add appends a link to a group.
func (h *LinksHandler) Add(c *gin.Context) {
	groupName := c.PostForm("group_name")
	linkName := c.PostForm("link_name")
	linkURL := c.PostForm("link_url")
	description := c.PostForm("link_description")

	if groupName == "" || linkName == "" || linkURL == "" {
		setFlash(c, "danger", "Group, Link Name, and URL are required fields.")
		redirectSettings(c)
		return
	}

	err := h.store.Update(func(doc *store.Document) error {
		if doc.FindGroup(groupName) == nil {
			return store.ErrGroupNotFound
		}
		icon := h.saveIcon(c, "link_icon")
		return doc.AddLink(groupName, store.Link{
			Name:        linkName,
			URL:         linkURL,
			Description: description,
			Icon:        icon,
		})
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		setFlash(c, "danger", "Group not found.")
	case err != nil:
		webError(c, err)
		return
	default:
		setFlash(c, "success", fmt.Sprintf("Link %q has been added to group %q.", linkName, groupName))
	}
	redirectSettings(c)
}

// Delete removes every link in the group matching the name exactly.
func (h *LinksHandler) Delete(c *gin.Context) {
	groupName := c.PostForm("group_name")
	linkName := c.PostForm("link_name")

	var removed bool
	err := h.store.Update(func(doc *store.Document) error {
		var opErr error
		removed, opErr = doc.DeleteLink(groupName, linkName)
		return opErr
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		setFlash(c, "danger", "Group not found.")
	case err != nil:
		webError(c, err)
		return
	case removed:
		setFlash(c, "success", fmt.Sprintf("Link %q has been deleted from %q.", linkName, groupName))
	default:
		setFlash(c, "danger", fmt.Sprintf("Link %q not found in group %q.", linkName, groupName))
	}
	redirectSettings(c)
}

// Edit overwrites a link's fields. The icon changes only when a valid new
// upload accompanies the request.
func (h *LinksHandler) Edit(c *gin.Context) {
	groupName := c.PostForm("group_name")
	oldName := c.PostForm("old_name")
	newName := c.PostForm("new_name")
	newURL := c.PostForm("new_url")
	newDescription := c.PostForm("new_description")

	if groupName == "" || oldName == "" || newName == "" || newURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name, old link name, new link name, and URL are required"})
		return
	}

	err := h.store.Update(func(doc *store.Document) error {
		icon := h.saveIcon(c, "new_icon")
		return doc.EditLink(groupName, oldName, newName, newURL, newDescription, icon)
	})
	switch {
	case errors.Is(err, store.ErrGroupNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	case errors.Is(err, store.ErrLinkNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
	case err != nil:
		apiError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Move swaps a link with its neighbor inside its group.
func (h *LinksHandler) Move(c *gin.Context) {
	groupName := c.PostForm("group_name")
	linkName := c.PostForm("link_name")
	direction := c.PostForm("direction")

	if groupName == "" || linkName == "" || direction == "" {
		setFlash(c, "danger", "Group name, link name, and direction are required.")
		redirectSettings(c)
		return
	}

	var moved bool
	err := h.store.Update(func(doc *store.Document) error {
		var opErr error
		moved, opErr = doc.MoveLink(groupName, linkName, direction)
		return opErr
	})
	switch {
	case errors.Is(err, store.ErrGroupNotFound):
		setFlash(c, "danger", "Group not found.")
	case errors.Is(err, store.ErrLinkNotFound):
		setFlash(c, "danger", "Link not found.")
	case err != nil:
		webError(c, err)
		return
	case moved:
		setFlash(c, "success", fmt.Sprintf("Link %q moved %s.", linkName, direction))
	default:
		setFlash(c, "warning", "Cannot move link in that direction.")
	}
	redirectSettings(c)
}

// saveIcon stores an uploaded icon under a sanitized filename and returns
// the stored name. An absent, disallowed or unsaveable upload yields nil;
// the link simply keeps no (or the previous) icon. A name collision
// silently overwrites the previous file.
func (h *LinksHandler) saveIcon(c *gin.Context, field string) *string {
	file, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	if !allowedIconFile(file.Filename) {
		return nil
	}
	name := sanitizeFilename(file.Filename)
	if name == "" {
		return nil
	}
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		slog.Warn("Failed to save uploaded icon", "filename", name, "error", err)
		return nil
	}
	return &name
}

// allowedIconFile checks the upload against the extension allow-list.
func allowedIconFile(filename string) bool {
	return allowedIconExts[strings.ToLower(filepath.Ext(filename))]
}

// sanitizeFilename reduces an uploaded filename to a safe basename:
// path components are stripped, spaces become underscores, and anything
// outside [A-Za-z0-9._-] is dropped.
func sanitizeFilename(filename string) string {
	name := filepath.Base(filepath.ToSlash(filename))
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}
