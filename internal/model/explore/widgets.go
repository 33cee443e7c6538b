package explore

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/notify"
	"github.com/vinser/pathbot/internal/pathbot"
	"github.com/vinser/pathbot/internal/style"
)

// Indexed by nav.CompassDirection.
var arrows = [...]string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

const maxNotifications = 5

func compassLine(h pathbot.MazeExitHint) string {
	if !h.Direction.Valid() {
		return "?"
	}
	var distance string
	switch h.Distance {
	case 0:
		distance = "right here"
	case 1:
		distance = "1 room away"
	default:
		distance = fmt.Sprintf("%d rooms away", h.Distance)
	}
	return fmt.Sprintf("%s  %s, %s (%.0f°)",
		style.Compass.Render(arrows[h.Direction]), h.Direction.LongName(), distance, h.Direction.AngleDeg())
}

func exitsLine(movable mapset.Set[nav.Direction]) string {
	parts := make([]string, 0, len(nav.Directions))
	for _, d := range nav.Directions {
		if movable.Has(d) {
			parts = append(parts, style.ExitOpen.Render(d.LongName()))
		} else {
			parts = append(parts, style.ExitClosed.Render(d.ShortName()))
		}
	}
	return strings.Join(parts, "  ")
}

// shownNotifications returns the newest entries that fit on screen and how
// many older ones are hidden.
func shownNotifications(q *notify.Queue) ([]notify.Entry, int) {
	entries := q.List()
	hidden := len(entries) - maxNotifications
	if hidden <= 0 {
		return entries, 0
	}
	return entries[hidden:], hidden
}

// selectedIndex resolves the selected ID against the shown entries. A
// selection that is gone falls back to the oldest shown entry.
func selectedIndex(shown []notify.Entry, selected notify.ID) int {
	for i, e := range shown {
		if e.ID == selected {
			return i
		}
	}
	return 0
}

// notificationLines renders the newest notifications in insertion order and
// marks the selected one.
func notificationLines(q *notify.Queue, selected notify.ID) []string {
	shown, hidden := shownNotifications(q)
	var lines []string
	if hidden > 0 {
		lines = append(lines, style.Footer.Render(fmt.Sprintf("… %d earlier", hidden)))
	}
	cursor := selectedIndex(shown, selected)
	for i, e := range shown {
		mark := "  "
		if i == cursor {
			mark = style.Compass.Render("›") + " "
		}
		lines = append(lines, mark+style.Notification(e.Level).Render(fmt.Sprintf("[%s] %s", e.Level, e.Message)))
	}
	return lines
}
