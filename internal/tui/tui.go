// Package tui is the interactive comparison list.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/compare/internal/compare"
	"github.com/idilsaglam/compare/internal/events"
	"github.com/idilsaglam/compare/internal/model"
)

type Options struct {
	CompareURL string
}

// Status holds the last message shown under the list. It doubles as the
// Manager's Warner so limit warnings land on screen.
type Status struct {
	msg   string
	isErr bool
}

func (s *Status) Warn(msg string) { s.msg, s.isErr = msg, true }
func (s *Status) Set(msg string)  { s.msg, s.isErr = msg, false }
func (s *Status) String() string  { return s.msg }

// listItem adapts a compared course to bubbles/list.Item
type listItem struct {
	id   string
	name string
}

func (i listItem) Title() string       { return i.name }
func (i listItem) Description() string { return i.id }
func (i listItem) FilterValue() string { return i.name + " " + i.id }

// single-line rendering
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	line := fmt.Sprintf("%s %s %s",
		successStyle.Render(slotTaken), it.name, mutedStyle.Render(it.id))
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type modelTUI struct {
	ctrl   *compare.Controller
	status *Status
	url    string

	list          list.Model
	width, height int

	// inline add
	adding bool
	ti     textinput.Model
	addErr string

	// single-level undo of the last removal
	undo *model.Record
}

var (
	addBind   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	delBind   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	undoBind  = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	clearBind = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear"))
)

func newModel(ctrl *compare.Controller, status *Status, opt Options) modelTUI {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("course", "courses")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, delBind, undoBind, clearBind} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "<id> <course name>"
	ti.CharLimit = 200

	m := modelTUI{ctrl: ctrl, status: status, url: opt.CompareURL, list: l, ti: ti}
	m.refresh()
	return m
}

// Run starts the program. Every change is saved by the Manager's autosave,
// so nothing is written on exit.
func Run(ctrl *compare.Controller, status *Status, opt Options) error {
	unsub := ctrl.Manager().Bus().SubscribeAll(status.onEvent)
	defer unsub()

	p := tea.NewProgram(newModel(ctrl, status, opt), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (s *Status) onEvent(ev events.Event) {
	switch ev.Kind {
	case events.ItemAdded:
		s.Set("added " + ev.Item.String())
	case events.ItemUpdated:
		s.Set("already comparing " + ev.Item.String())
	case events.ItemRemoved:
		if ev.Item != nil {
			s.Set("removed " + ev.Item.String())
		}
	}
}

// refresh rebuilds the list from the controller.
func (m *modelTUI) refresh() {
	items := m.ctrl.ItemsCompare()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{id: it.ID(), name: it.Name()})
	}
	m.list.SetItems(li)
	m.list.Title = fmt.Sprintf("%s   %s %d/%d",
		"Compare",
		accentStyle.Render("slots"), len(items), m.ctrl.Limit())
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
	}

	if m.adding {
		var cmd tea.Cmd
		if x, ok := msg.(tea.KeyMsg); ok {
			switch x.String() {
			case "enter":
				fields := strings.Fields(m.ti.Value())
				if len(fields) < 2 {
					m.addErr = "Enter an id and a name"
					return m, nil
				}
				m.ctrl.AddToCompare(fields[0], strings.Join(fields[1:], " "))
				m.refresh()
				m.stopAdding()
				return m, nil
			case "esc":
				m.stopAdding()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// let the filter input have every key while typing
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if x, ok := msg.(tea.KeyMsg); ok {
		switch x.String() {
		case "q", "esc":
			return m, tea.Quit
		case "a":
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			cmd := m.ti.Focus()
			return m, cmd
		case "d":
			if it, ok := m.list.SelectedItem().(listItem); ok {
				m.undo = &model.Record{ID: it.id, Name: it.name}
				m.ctrl.RemoveFromCompare(it.id)
				m.refresh()
			}
			return m, nil
		case "u":
			if m.undo != nil {
				m.ctrl.AddToCompare(m.undo.ID, m.undo.Name)
				m.undo = nil
				m.refresh()
			}
			return m, nil
		case "c":
			if err := m.ctrl.Clear(); err != nil {
				m.status.Warn("clear: " + err.Error())
			} else {
				m.status.Set("cleared")
			}
			m.undo = nil
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *modelTUI) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m modelTUI) View() string {
	w, h := m.width, m.height
	if w == 0 || h == 0 {
		w, h = 80, 24
	}
	listHeight := h - 6
	if m.adding {
		listHeight -= 3
	}
	m.list.SetSize(w-4, listHeight)

	content := m.list.View()
	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		title := "Add course"
		if m.addErr != "" {
			title += " " + errorStyle.Render(m.addErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}

	if msg := m.status.String(); msg != "" {
		style := successStyle
		if m.status.isErr {
			style = errorStyle
		}
		content += "\n" + style.Render(msg)
	}
	if m.url != "" {
		content += "\n" + mutedStyle.Render(m.url)
	}
	return panelString(content)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
