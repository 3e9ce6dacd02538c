package service

import (
	"context"

	"menubot/internal/domain"
	"menubot/internal/menu"
)

// Sender delivers a reply to a chat
type Sender interface {
	Send(ctx context.Context, chatID string, reply domain.Reply) error
}

// MenuPresenter renders menus and sends them to the user
type MenuPresenter struct {
	sender Sender
}

// NewMenuPresenter creates a new menu presenter
func NewMenuPresenter(sender Sender) *MenuPresenter {
	return &MenuPresenter{sender: sender}
}

// SendNext shows the menu the user just entered
func (p *MenuPresenter) SendNext(ctx context.Context, user *domain.User, node domain.MenuNode, children []domain.MenuNode) error {
	return p.sender.Send(ctx, user.ChatID, domain.Reply{Message: menu.RenderNext(node, children)})
}

// SendCurrent shows the menu the user is on, the root menu when the pointer is unset
func (p *MenuPresenter) SendCurrent(ctx context.Context, user *domain.User, children []domain.MenuNode) error {
	return p.sender.Send(ctx, user.ChatID, domain.Reply{Message: menu.RenderCurrent(children, user.CurrentMenuID == nil)})
}
