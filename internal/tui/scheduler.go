package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/reel/internal/carousel"
)

// tickMsg delivers one firing of a scheduled task back into Update.
type tickMsg struct {
	id int
}

type scheduledTask struct {
	interval time.Duration
	fn       func()
}

// teaScheduler runs carousel timers on the Bubble Tea event loop. Each task
// is a chain of tea.Tick commands keyed by id; cancelling drops the id so a
// tick already in flight is ignored when it arrives. Commands produced while
// handling a message are collected and returned by Flush.
type teaScheduler struct {
	frameInterval time.Duration
	now           func() time.Time

	nextID  int
	tasks   map[int]*scheduledTask
	pending []tea.Cmd
}

func newTeaScheduler(frameInterval time.Duration) *teaScheduler {
	if frameInterval <= 0 {
		frameInterval = time.Second / 60
	}
	return &teaScheduler{
		frameInterval: frameInterval,
		now:           time.Now,
		tasks:         make(map[int]*scheduledTask),
	}
}

var _ carousel.Scheduler = (*teaScheduler)(nil)

func (s *teaScheduler) Every(interval time.Duration, fn func()) carousel.CancelFunc {
	s.nextID++
	id := s.nextID
	s.tasks[id] = &scheduledTask{interval: interval, fn: fn}
	s.schedule(id, interval)
	return func() { delete(s.tasks, id) }
}

func (s *teaScheduler) Frames(fn func()) carousel.CancelFunc {
	return s.Every(s.frameInterval, fn)
}

func (s *teaScheduler) Now() time.Time { return s.now() }

func (s *teaScheduler) schedule(id int, d time.Duration) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
}

// handle runs the task behind msg and schedules its next firing. It returns
// false for ticks whose task has been cancelled.
func (s *teaScheduler) handle(msg tickMsg) bool {
	task, ok := s.tasks[msg.id]
	if !ok {
		return false
	}
	task.fn()
	if _, live := s.tasks[msg.id]; live {
		s.schedule(msg.id, task.interval)
	}
	return true
}

// Flush returns the commands scheduled since the last call.
func (s *teaScheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *teaScheduler) live() int { return len(s.tasks) }
