package menu

import (
	"fmt"
	"strings"

	"menubot/internal/domain"
)

const (
	homeHeader = "Escolha uma opção:"
	resetHint  = "Digite 0 para voltar ao menu principal."
)

// RenderOptions lists children as "<code> - <title>" lines
func RenderOptions(children []domain.MenuNode) string {
	lines := make([]string, 0, len(children))
	for _, c := range children {
		lines = append(lines, fmt.Sprintf("%s - %s", c.OrderCode, c.Title))
	}
	return strings.Join(lines, "\n")
}

// RenderNext renders the menu a user just entered
func RenderNext(node domain.MenuNode, children []domain.MenuNode) string {
	if len(children) == 0 {
		return node.Title + "\n\n" + resetHint
	}
	return node.Title + "\n\n" + RenderOptions(children) + "\n\n" + resetHint
}

// RenderCurrent renders the menu the user is already on; atRoot drops the reset hint
func RenderCurrent(children []domain.MenuNode, atRoot bool) string {
	if len(children) == 0 {
		return resetHint
	}
	text := homeHeader + "\n\n" + RenderOptions(children)
	if !atRoot {
		text += "\n\n" + resetHint
	}
	return text
}
