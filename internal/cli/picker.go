package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/canopy/pkg/canvas"
	"github.com/matzehuels/canopy/pkg/canvas/document"
	"github.com/matzehuels/canopy/pkg/errors"
	"github.com/matzehuels/canopy/pkg/tree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// nodeEntry is one selectable shape in the picker.
type nodeEntry struct {
	Handle canvas.NodeHandle
	ID     string // node id for decorated shapes, "" otherwise
	Label  string
	Kind   canvas.Kind
}

// =============================================================================
// NodeListModel - Interactive shape selection
// =============================================================================

// NodeListModel is the bubbletea model for picking a shape off a page.
type NodeListModel struct {
	Entries  []nodeEntry
	Cursor   int
	Selected *nodeEntry
}

// NewNodeListModel creates a new node list model.
func NewNodeListModel(entries []nodeEntry) NodeListModel {
	return NodeListModel{Entries: entries}
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Entries[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Node"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, e := range m.Entries {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		status := StyleSuccess.Render("*")
		name := e.ID
		if name == "" {
			status = StyleWarning.Render("!")
			name = "(undecorated)"
		}
		label := e.Label
		if label == "" {
			label = "—"
		}

		line := fmt.Sprintf("%s%s %-8s %-25s %s", cursor, status, name, label, listDimStyle.Render(string(e.Kind)))

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case e.ID == "":
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s in hierarchy  %s undecorated",
		StyleSuccess.Render("*"), StyleWarning.Render("!")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// =============================================================================
// Entry point
// =============================================================================

// pickNode opens the interactive picker over every shape on the page and
// returns the chosen handle. Quitting without a selection is an error.
func pickNode(page *document.Page, idx *tree.Index) (canvas.NodeHandle, error) {
	handles, err := page.Nodes()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "list shapes")
	}
	if len(handles) == 0 {
		return "", errors.New(errors.ErrCodeInvalidSelection, "page has no shapes")
	}

	entries := make([]nodeEntry, 0, len(handles))
	for _, h := range handles {
		label, err := page.LabelText(h)
		if err != nil {
			return "", err
		}
		kind, err := page.Kind(h)
		if err != nil {
			return "", err
		}
		e := nodeEntry{Handle: h, Label: label, Kind: kind}
		if n := idx.ByHandle(h); n != nil {
			e.ID = string(n.Desc.ID)
		}
		entries = append(entries, e)
	}

	final, err := tea.NewProgram(NewNodeListModel(entries)).Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "run picker")
	}
	model, ok := final.(NodeListModel)
	if !ok || model.Selected == nil {
		return "", errors.New(errors.ErrCodeInvalidSelection, "no node selected")
	}
	return model.Selected.Handle, nil
}
