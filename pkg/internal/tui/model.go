package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campus-connect/campusctl/pkg/internal/chat"
	"github.com/campus-connect/campusctl/pkg/internal/models"
)

var (
	senderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	replyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	reactionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bannerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	indexStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

type roomUpdateMsg chat.RoomUpdate

type actionDoneMsg struct {
	err error
}

// Model is the full-screen chat view for one channel.
type Model struct {
	room *chat.Room

	viewport viewport.Model
	input    textarea.Model

	width  int
	height int
	ready  bool
	status string
}

func New(room *chat.Room) *Model {
	input := textarea.New()
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.SetHeight(2)
	input.Placeholder = fmt.Sprintf("Message %s", room.Channel().DisplayText())
	input.Focus()

	return &Model{
		room:     room,
		viewport: viewport.New(0, 0),
		input:    input,
	}
}

// Run drives the view until the user quits, then tears the room down.
func Run(room *chat.Room) error {
	program := tea.NewProgram(New(room), tea.WithAltScreen())
	_, err := program.Run()
	room.Close()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForUpdate(), textarea.Blink)
}

func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		return roomUpdateMsg(<-m.room.Updates())
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshViewport(true)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlJ:
			// The terminal's stand-in for Shift+Enter: a literal
			// newline, no submit.
			m.input.InsertString("\n")
			m.room.Keystroke(m.input.Value())
			return m, nil
		case tea.KeyEnter:
			return m, m.handleSubmit()
		case tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.room.Keystroke(m.input.Value())
		return m, cmd

	case roomUpdateMsg:
		m.refreshViewport(chat.RoomUpdate(msg) == chat.RoomMessagesChanged)
		return m, m.waitForUpdate()

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
			m.input.Reset()
		}
		m.refreshViewport(true)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSubmit() tea.Cmd {
	value := m.input.Value()
	if strings.HasPrefix(strings.TrimSpace(value), "/") {
		return m.handleSlashCommand(strings.TrimSpace(value))
	}

	m.room.Composer.SetContent(value)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return actionDoneMsg{err: m.room.Submit(ctx)}
	}
}

// Slash commands address messages by the ordinal shown in the gutter.
func (m *Model) handleSlashCommand(value string) tea.Cmd {
	fields := strings.Fields(value)
	command := fields[0]
	args := fields[1:]

	switch command {
	case "/quit":
		return tea.Quit
	case "/cancel":
		m.room.Composer.CancelTargets()
		m.input.Reset()
		m.status = ""
		m.refreshViewport(false)
		return nil
	case "/reply", "/edit", "/react", "/delete", "/pin", "/unpin":
		if len(args) == 0 {
			m.status = fmt.Sprintf("usage: %s <n>", command)
			return nil
		}
		message, ok := m.messageAt(args[0])
		if !ok {
			m.status = fmt.Sprintf("no message #%s", args[0])
			return nil
		}
		return m.dispatchCommand(command, message, args[1:])
	default:
		m.status = fmt.Sprintf("unknown command %s", command)
		return nil
	}
}

func (m *Model) dispatchCommand(command string, message models.Message, rest []string) tea.Cmd {
	switch command {
	case "/reply":
		m.room.Composer.StartReply(message)
		m.input.Reset()
		m.status = ""
	case "/edit":
		if message.SenderID != m.room.Self().ID {
			m.status = "you can only edit your own messages"
			return nil
		}
		m.room.Composer.StartEdit(message)
		m.input.SetValue(message.Text())
		m.status = ""
	case "/react":
		if len(rest) == 0 {
			m.status = "usage: /react <n> <emoji>"
			return nil
		}
		emoji := rest[0]
		m.input.Reset()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return actionDoneMsg{err: m.room.React(ctx, message.ID, emoji)}
		}
	case "/delete":
		if message.SenderID != m.room.Self().ID {
			m.status = "you can only delete your own messages"
			return nil
		}
		m.input.Reset()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return actionDoneMsg{err: m.room.Delete(ctx, message.ID)}
		}
	case "/pin":
		m.input.Reset()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return actionDoneMsg{err: m.room.Pin(ctx, message.ID)}
		}
	case "/unpin":
		m.input.Reset()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return actionDoneMsg{err: m.room.Unpin(ctx, message.ID)}
		}
	}
	m.refreshViewport(false)
	return nil
}

func (m *Model) messageAt(arg string) (models.Message, bool) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return models.Message{}, false
	}
	messages := m.room.Cache.Snapshot()
	if index < 1 || index > len(messages) {
		return models.Message{}, false
	}
	return messages[index-1], true
}

func (m *Model) resize() {
	inputHeight := m.input.Height() + 1
	headerHeight := 2
	footerHeight := 2
	m.viewport.Width = m.width
	m.viewport.Height = m.height - inputHeight - headerHeight - footerHeight
	m.input.SetWidth(m.width - 2)
}

func (m *Model) refreshViewport(follow bool) {
	m.viewport.SetContent(m.renderMessages())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) View() string {
	if !m.ready {
		return "loading…"
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderBanner(),
		m.input.View(),
		statusStyle.Render(m.statusLine()),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	channel := m.room.Channel()
	title := separatorStyle.Render(channel.DisplayText())
	meta := metaStyle.Render(fmt.Sprintf("%s · %d members", channel.ChannelType, channel.MemberCount))
	return title + "  " + meta + "\n"
}

func (m *Model) renderBanner() string {
	switch m.room.Composer.State() {
	case chat.ComposerReply:
		target := m.room.Composer.ReplyTarget()
		return bannerStyle.Render(fmt.Sprintf("replying to %s: %s  (/cancel to clear)", target.SenderDisplay(), excerpt(target.Text(), 48)))
	case chat.ComposerEdit:
		return bannerStyle.Render("editing message  (/cancel to clear)")
	}
	return ""
}

func (m *Model) statusLine() string {
	left := m.status
	if typing := m.room.Typing.Users(); len(typing) > 0 {
		indicator := "someone is typing…"
		if len(typing) > 1 {
			indicator = fmt.Sprintf("%d people are typing…", len(typing))
		}
		if left != "" {
			left += " · "
		}
		left += indicator
	}
	if left == "" {
		left = "enter to send · ctrl+j for newline · /reply /edit /react /pin /delete · esc to close"
	}
	return left
}

func (m *Model) renderMessages() string {
	messages := m.room.Cache.Snapshot()
	if len(messages) == 0 {
		return metaStyle.Render("no messages yet")
	}

	now := time.Now()
	var b strings.Builder
	for i, message := range messages {
		if i == 0 || chat.NeedsSeparator(messages[i-1].CreatedAt, message.CreatedAt) {
			b.WriteString(separatorStyle.Render("── " + chat.DayLabel(message.CreatedAt, now) + " ──"))
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(i+1, message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderMessage(index int, message models.Message) string {
	header := fmt.Sprintf("%s %s %s",
		indexStyle.Render(fmt.Sprintf("[%d]", index)),
		senderStyle.Render(message.SenderDisplay()),
		metaStyle.Render(message.CreatedAt.Local().Format("15:04")),
	)
	if message.IsEdited {
		header += " " + metaStyle.Render("(edited)")
	}

	lines := []string{header}
	if message.ReplyTo != nil {
		lines = append(lines, replyStyle.Render(fmt.Sprintf("  ↪ %s: %s", message.ReplyTo.SenderDisplay(), excerpt(message.ReplyTo.Text(), 60))))
	}
	for _, line := range strings.Split(message.Text(), "\n") {
		lines = append(lines, "  "+line)
	}
	if message.FileName != nil {
		lines = append(lines, metaStyle.Render("  📎 "+*message.FileName))
	}
	if len(message.Reactions) > 0 {
		var badges []string
		for _, reaction := range message.Reactions {
			badges = append(badges, fmt.Sprintf("%s %d", reaction.Emoji, reaction.Count))
		}
		lines = append(lines, reactionStyle.Render("  "+strings.Join(badges, "  ")))
	}
	return strings.Join(lines, "\n")
}

func excerpt(text string, max int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "…"
}
