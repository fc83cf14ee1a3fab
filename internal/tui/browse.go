// Package tui is the interactive catalog browser. One bubbletea model: the
// full class list lives in memory, and every keystroke re-derives the visible
// slice through catalog.View. The server is only touched on load and refresh.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tharindu/classtrack/internal/apiclient"
	"github.com/tharindu/classtrack/internal/bookmark"
	"github.com/tharindu/classtrack/internal/catalog"
	"github.com/tharindu/classtrack/internal/model"
)

// noticeTTL is how long a transient notice stays on screen.
const noticeTTL = 3 * time.Second

type classesMsg []model.Class

type errMsg struct{ err error }

// noticeExpiredMsg carries the sequence number of the notice it was scheduled
// to dismiss. A newer notice bumps the sequence, so a stale timer firing for
// an old notice is ignored instead of wiping the new one.
type noticeExpiredMsg struct{ seq int }

// Model is the browse view state.
type Model struct {
	client *apiclient.Client
	marks  *bookmark.Set

	search textinput.Model
	query  catalog.Query

	all     []model.Class
	visible []model.Class
	cursor  int

	onlyMarked bool
	loading    bool

	notice    string
	noticeSeq int
}

// New builds the browse model. Classes are fetched by Init.
func New(client *apiclient.Client, marks *bookmark.Set) Model {
	search := textinput.New()
	search.Placeholder = "search title, teacher, subject, schedule, room"
	search.Prompt = "/ "
	search.CharLimit = 80

	return Model{
		client:  client,
		marks:   marks,
		search:  search,
		query:   catalog.DefaultQuery(),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), textinput.Blink)
}

// load fetches the catalog. Runs off the update loop; the result comes back
// as a classesMsg or errMsg.
func (m Model) load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		classes, err := client.ListClasses(ctx)
		if err != nil {
			return errMsg{err}
		}
		return classesMsg(classes)
	}
}

// setNotice replaces the current notice and schedules its dismissal. The
// bumped sequence number invalidates any timer still pending for the
// previous notice.
func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// refresh re-derives the visible slice from the full list and current query,
// then clamps the cursor.
func (m *Model) refresh() {
	m.query.Text = m.search.Value()
	records := m.all
	if m.onlyMarked {
		marked := make([]model.Class, 0, m.marks.Len())
		for _, c := range records {
			if m.marks.Has(c.ID) {
				marked = append(marked, c)
			}
		}
		records = marked
	}
	m.visible = catalog.View(records, m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.search.Width = msg.Width - 4
		return m, nil

	case classesMsg:
		m.loading = false
		m.all = msg
		m.refresh()
		return m, nil

	case errMsg:
		m.loading = false
		return m, m.setNotice("Error: " + msg.err.Error())

	case noticeExpiredMsg:
		// Stale timer for an already-replaced notice: leave it alone.
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.search.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.search, cmd = m.search.Update(msg)
				m.refresh()
				return m, cmd
			}
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.search.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case "s":
		m.query.Sort = nextOption(catalog.SortKeys, m.query.Sort)
		m.refresh()

	case "f":
		m.query.Subject = nextOption(catalog.Subjects(m.all), m.query.Subject)
		m.refresh()

	case "g":
		m.query.Grade = nextOption(catalog.Grades(m.all), m.query.Grade)
		m.refresh()

	case "a":
		m.query.Status = nextOption([]string{"All", model.StatusActive, model.StatusInactive}, m.query.Status)
		m.refresh()

	case "m":
		m.onlyMarked = !m.onlyMarked
		m.refresh()

	case "b":
		if len(m.visible) == 0 {
			return m, nil
		}
		id := m.visible[m.cursor].ID
		added, err := m.marks.Toggle(id)
		if err != nil {
			return m, m.setNotice("Error: " + err.Error())
		}
		m.refresh()
		if added {
			return m, m.setNotice("Bookmarked")
		}
		return m, m.setNotice("Bookmark removed")

	case "x":
		m.query = catalog.DefaultQuery()
		m.search.SetValue("")
		m.onlyMarked = false
		m.cursor = 0
		m.refresh()
		return m, m.setNotice("Filters reset")

	case "r":
		m.loading = true
		return m, tea.Batch(m.load(), m.setNotice("Refreshing..."))
	}

	return m, nil
}

// nextOption returns the entry after current, wrapping around. An unknown
// current lands on the first entry.
func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, opt := range options {
		if opt == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Classtrack — class catalog"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	marked := " "
	if m.onlyMarked {
		marked = "on"
	}
	b.WriteString(filterStyle.Render(fmt.Sprintf(
		"subject:%s  grade:%s  status:%s  sort:%s  bookmarked:%s",
		m.query.Subject, m.query.Grade, m.query.Status, m.query.Sort, marked,
	)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(dimStyle.Render("Loading classes..."))
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(dimStyle.Render("No classes match the current filters."))
		b.WriteString("\n")
	default:
		for i, c := range m.visible {
			b.WriteString(m.renderRow(i, c))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(
		"/ search  s sort  f subject  g grade  a status  m bookmarked  b toggle mark  x reset  r refresh  q quit",
	))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderRow(i int, c model.Class) string {
	mark := " "
	if m.marks.Has(c.ID) {
		mark = "*"
	}
	line := fmt.Sprintf("%s %-28s %-14s gr %-4s %-18s %8s %s",
		mark, truncate(c.Title, 28), truncate(c.Subject, 14), c.Grade,
		truncate(c.Teacher, 18), fmt.Sprintf("%.2f", c.Fee), c.Status,
	)
	if i == m.cursor {
		return selectedStyle.Render(line)
	}
	return rowStyle.Render(line)
}

// truncate shortens s to at most n characters. Counting and slicing happen
// on runes so a multi-byte title is never cut mid-character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
