package ui

import (
	"ozean/hal"
	"ozean/reef/gfx"
	"ozean/reef/pet"
)

// Colors shared by the chrome and the screens.
const (
	ColorStatusBG uint16 = 0x4208
	ColorWhite    uint16 = 0xFFFF
	ColorYellow   uint16 = 0xFFE0
	ColorGray     uint16 = 0x7BEF
	ColorGreen    uint16 = 0x07E0
	ColorNavy     uint16 = 0x0010
	ColorPanel    uint16 = 0x18C3
	ColorBlack    uint16 = 0x0000
)

// MenuItem is an entry of the bottom menu.
type MenuItem uint8

const (
	ItemFeed MenuItem = iota
	ItemPlay
	ItemRest
	ItemClean
	ItemMenu

	numItems
)

var itemLabels = [numItems]string{msgFeed, msgPlay, msgRest, msgClean, msgMenu}

// Action maps an item to the pet action it queues.
func (m MenuItem) Action() pet.Action {
	switch m {
	case ItemFeed:
		return pet.Feed
	case ItemPlay:
		return pet.Play
	case ItemRest:
		return pet.Rest
	case ItemClean:
		return pet.Clean
	}
	return pet.None
}

type statusKey struct {
	hunger, fun, energy, hp, maxHP int
}

// Chrome owns the status bar and bottom menu. Both are redrawn only when
// their content changed since the last draw.
type Chrome struct {
	labels  Labels
	width   int
	height  int
	statusH int
	bottomH int

	sel MenuItem

	shownStatus statusKey
	statusValid bool
	shownSel    MenuItem
	menuValid   bool
}

func NewChrome(labels Labels, width, height, statusH, bottomH int) *Chrome {
	return &Chrome{labels: labels, width: width, height: height, statusH: statusH, bottomH: bottomH}
}

func (c *Chrome) Selected() MenuItem { return c.sel }

// Invalidate forces both bars to redraw (after a full-screen modal).
func (c *Chrome) Invalidate() {
	c.statusValid = false
	c.menuValid = false
}

// Handle applies presses to the menu. Left and Right move the selection with
// wrap-around; Ok on an action item returns its action unless busy; Ok on
// Menu reports pause.
func (c *Chrome) Handle(p hal.ButtonMask, busy bool) (a pet.Action, pause bool) {
	switch {
	case p&hal.ButtonLeft != 0:
		c.sel = (c.sel + numItems - 1) % numItems
	case p&hal.ButtonRight != 0:
		c.sel = (c.sel + 1) % numItems
	case p&hal.ButtonOk != 0:
		if c.sel == ItemMenu {
			return pet.None, true
		}
		if busy {
			return pet.None, false
		}
		return c.sel.Action(), false
	}
	return pet.None, false
}

// DrawStatus repaints the status bar if the shown values changed.
func (c *Chrome) DrawStatus(t gfx.Target, s pet.Stats, maxHP int) bool {
	k := statusKey{hunger: s.Hunger, fun: s.Fun, energy: s.Energy, hp: s.HP, maxHP: maxHP}
	if c.statusValid && k == c.shownStatus {
		return false
	}
	t.FillRect(0, 0, c.width, c.statusH, ColorStatusBG)
	Text(t, 4, (c.statusH-lineHeight)/2, c.labels.T(msgStatus, k.hunger, k.fun, k.energy, k.hp, k.maxHP), ColorWhite)
	c.shownStatus, c.statusValid = k, true
	return true
}

// DrawMenu repaints the bottom menu if the selection changed.
func (c *Chrome) DrawMenu(t gfx.Target) bool {
	if c.menuValid && c.sel == c.shownSel {
		return false
	}
	y := c.height - c.bottomH
	t.FillRect(0, y, c.width, c.bottomH, ColorStatusBG)
	section := c.width / int(numItems)
	for i := MenuItem(0); i < numItems; i++ {
		x := int(i) * section
		w := section
		if i == numItems-1 {
			w = c.width - x
		}
		fg := ColorWhite
		drawRect(t, x+1, y+1, w-2, c.bottomH-2, ColorWhite)
		if i == c.sel {
			t.FillRect(x+2, y+2, w-4, c.bottomH-4, ColorWhite)
			fg = ColorStatusBG
		}
		TextCentered(t, x, y+(c.bottomH-lineHeight)/2, w, c.labels.T(itemLabels[i]), fg)
	}
	c.shownSel, c.menuValid = c.sel, true
	return true
}
