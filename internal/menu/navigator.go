package menu

import (
	"context"
	"strings"

	"menubot/internal/domain"
)

// ResetCode sends the user back to the root menu and is never a valid order code
const ResetCode = "0"

var resetCodes = map[string]struct{}{
	"voltar":  {},
	"#":       {},
	ResetCode: {},
}

// Store is the slice of the menu repository the navigator reads
type Store interface {
	GetByChildren(ctx context.Context, parentID *int64, robotID int64) ([]domain.MenuNode, error)
	GetByID(ctx context.Context, menuID, robotID int64) (*domain.MenuNode, error)
}

// Navigator resolves which menu a user is looking at and where a code takes them
type Navigator struct {
	store Store
}

// NewNavigator creates a navigator over a menu store
func NewNavigator(store Store) *Navigator {
	return &Navigator{store: store}
}

// ChildrenOf lists the options under a menu, nil meaning the root level
func (n *Navigator) ChildrenOf(ctx context.Context, menuID *int64, robotID int64) ([]domain.MenuNode, error) {
	return n.store.GetByChildren(ctx, menuID, robotID)
}

// Node loads a single menu
func (n *Navigator) Node(ctx context.Context, menuID, robotID int64) (*domain.MenuNode, error) {
	return n.store.GetByID(ctx, menuID, robotID)
}

// IsResetCode reports whether the text sends the user back to the root menu
func IsResetCode(text string) bool {
	_, ok := resetCodes[strings.ToLower(strings.TrimSpace(text))]
	return ok
}

// IsNumeric reports whether the text is a non-empty run of ASCII digits
func IsNumeric(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsSelection reports whether the text should be matched against menu codes
func IsSelection(text string) bool {
	return IsNumeric(text) && text != ResetCode
}

// ResolveMatch returns the child whose order code equals the input.
// Siblings are scanned in order and the scan stops at the first match.
func ResolveMatch(children []domain.MenuNode, input string) (*domain.MenuNode, bool) {
	if !IsSelection(input) {
		return nil, false
	}
	for i := range children {
		if children[i].OrderCode == input {
			return &children[i], true
		}
	}
	return nil, false
}
