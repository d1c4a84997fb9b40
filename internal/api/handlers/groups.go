package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mightywomble/linksdashboard/internal/store"
)

// GroupsHandler mutates the ordered group list.
type GroupsHandler struct {
	store *store.Store
}

func NewGroupsHandler(st *store.Store) *GroupsHandler {
	return &GroupsHandler{store: st}
}

// Add creates a new empty group at the end of the list.
func (h *GroupsHandler) Add(c *gin.Context) {
	name := c.PostForm("group_name")
	icon := c.PostForm("group_icon")

	if name == "" {
		setFlash(c, "danger", "Group name is required.")
		redirectSettings(c)
		return
	}

	err := h.store.Update(func(doc *store.Document) error {
		return doc.AddGroup(name, icon)
	})
	switch {
	case errors.Is(err, store.ErrDuplicateName):
		setFlash(c, "danger", "A group with this name already exists.")
	case err != nil:
		webError(c, err)
		return
	default:
		setFlash(c, "success", fmt.Sprintf("Group %q has been added.", name))
	}
	redirectSettings(c)
}

// Delete removes every group matching the submitted name exactly.
func (h *GroupsHandler) Delete(c *gin.Context) {
	name := c.PostForm("group_name")

	var removed bool
	err := h.store.Update(func(doc *store.Document) error {
		removed = doc.DeleteGroup(name)
		return nil
	})
	if err != nil {
		webError(c, err)
		return
	}

	if removed {
		setFlash(c, "success", fmt.Sprintf("Group %q has been deleted.", name))
	} else {
		setFlash(c, "danger", fmt.Sprintf("Group %q not found.", name))
	}
	redirectSettings(c)
}

// Edit renames a group and updates its icon, in place.
func (h *GroupsHandler) Edit(c *gin.Context) {
	oldName := c.PostForm("old_name")
	newName := c.PostForm("new_name")
	icon := c.PostForm("icon")

	if oldName == "" || newName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group names are required"})
		return
	}

	err := h.store.Update(func(doc *store.Document) error {
		return doc.RenameGroup(oldName, newName, icon)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
	case errors.Is(err, store.ErrDuplicateName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A group with this name already exists"})
	case err != nil:
		apiError(c, err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Move swaps a group with its neighbor in the requested direction.
func (h *GroupsHandler) Move(c *gin.Context) {
	name := c.PostForm("group_name")
	direction := c.PostForm("direction")

	if name == "" || direction == "" {
		setFlash(c, "danger", "Group name and direction are required.")
		redirectSettings(c)
		return
	}

	var moved bool
	err := h.store.Update(func(doc *store.Document) error {
		var opErr error
		moved, opErr = doc.MoveGroup(name, direction)
		return opErr
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		setFlash(c, "danger", "Group not found.")
	case err != nil:
		webError(c, err)
		return
	case moved:
		setFlash(c, "success", fmt.Sprintf("Group %q moved %s.", name, direction))
	default:
		setFlash(c, "warning", "Cannot move group in that direction.")
	}
	redirectSettings(c)
}
