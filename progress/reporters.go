package progress

import (
	"log"

	"github.com/google/uuid"
)

// LogReporter writes progress to the standard logger, tagged with a per-invocation ID.
type LogReporter struct {
	// ID identifies the invocation in log lines.
	ID string
	// Title is used as the label when an update carries none.
	Title string
	// Verbose logs intermediate checkpoints, not only terminal calls.
	Verbose bool
}

// NewLogReporter creates a LogReporter with a fresh random ID.
func NewLogReporter(title string, verbose bool) *LogReporter {
	return &LogReporter{
		ID:      uuid.NewString()[:8],
		Title:   title,
		Verbose: verbose,
	}
}

// LogFactory returns a Factory producing LogReporters.
func LogFactory(verbose bool) Factory {
	return func(title string) Reporter {
		return NewLogReporter(title, verbose)
	}
}

// Update logs a checkpoint. Intermediate ones are logged only when Verbose.
func (r *LogReporter) Update(percent int, label string) {
	if label == "" {
		label = r.Title
	}
	if r.Verbose || percent >= 100 {
		log.Printf("[%s] %s: %3d%% %s", r.ID, r.Title, percent, label)
	}
}

// Success logs the terminal success.
func (r *LogReporter) Success(message string) {
	log.Printf("[%s] %s: done: %s", r.ID, r.Title, message)
}

// Error logs the terminal failure.
func (r *LogReporter) Error(message string) {
	log.Printf("[%s] %s: failed: %s", r.ID, r.Title, message)
}

// Event is a single progress notification.
type Event struct {
	// Title of the operation that produced the event.
	Title string `json:"title"`
	// Percent is the checkpoint reached.
	Percent int `json:"percent"`
	// Label describes the step, or carries the terminal message.
	Label string `json:"label"`
	// Done is set on the terminal event.
	Done bool `json:"done"`
	// Failed is set when the terminal event is an error.
	Failed bool `json:"failed"`
}

// ChannelReporter forwards events to a channel. Updates never block: when the
// channel is full they are dropped. Terminal events always block until
// received, so a listener sees exactly one of them.
type ChannelReporter struct {
	title  string
	events chan<- Event
}

// NewChannelReporter creates a ChannelReporter sending to events.
func NewChannelReporter(title string, events chan<- Event) *ChannelReporter {
	return &ChannelReporter{title: title, events: events}
}

// ChannelFactory returns a Factory whose reporters all send to events.
func ChannelFactory(events chan<- Event) Factory {
	return func(title string) Reporter {
		return NewChannelReporter(title, events)
	}
}

func (r *ChannelReporter) send(e Event) {
	e.Title = r.title
	if e.Done {
		r.events <- e
		return
	}
	select {
	case r.events <- e:
	default:
	}
}

// Update sends a checkpoint if the channel has room.
func (r *ChannelReporter) Update(percent int, label string) {
	r.send(Event{Percent: percent, Label: label})
}

// Success sends the terminal success, waiting for the receiver.
func (r *ChannelReporter) Success(message string) {
	r.send(Event{Percent: 100, Label: message, Done: true})
}

// Error sends the terminal failure, waiting for the receiver.
func (r *ChannelReporter) Error(message string) {
	r.send(Event{Percent: 100, Label: message, Done: true, Failed: true})
}

// Recorder keeps every event it receives, in order.
type Recorder struct {
	Title  string
	Events []Event
}

// Update records a checkpoint.
func (r *Recorder) Update(percent int, label string) {
	r.Events = append(r.Events, Event{Title: r.Title, Percent: percent, Label: label})
}

// Success records the terminal success.
func (r *Recorder) Success(message string) {
	r.Events = append(r.Events, Event{Title: r.Title, Percent: 100, Label: message, Done: true})
}

// Error records the terminal failure.
func (r *Recorder) Error(message string) {
	r.Events = append(r.Events, Event{Title: r.Title, Percent: 100, Label: message, Done: true, Failed: true})
}

// Percents returns the checkpoints recorded, excluding terminal events.
func (r *Recorder) Percents() []int {
	var out []int
	for _, e := range r.Events {
		if !e.Done {
			out = append(out, e.Percent)
		}
	}
	return out
}

// Terminal returns the terminal events recorded.
func (r *Recorder) Terminal() []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Done {
			out = append(out, e)
		}
	}
	return out
}
