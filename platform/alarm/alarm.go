// Package alarm is an alarm clock backed by a gocron scheduler. Every alarm
// rings once, at the next occurrence of its hour & minute.
package alarm

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Daskott/sosphone/colors"
	"github.com/Daskott/sosphone/logger"
	"github.com/Daskott/sosphone/platform"
	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
)

var logg = logger.NewLogger()

type Alarm struct {
	Tag   string
	Label string
	At    time.Time
}

type Clock struct {
	scheduler *gocron.Scheduler
	location  *time.Location
	out       io.Writer

	mu     sync.Mutex
	alarms map[string]Alarm
	rang   chan Alarm
}

func NewClock(timeZone string, out io.Writer) *Clock {
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		logg.Warnf("unknown time zone %q, using local time: %v", timeZone, err)
		location = time.Local
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.TagsUnique()

	return &Clock{
		scheduler: scheduler,
		location:  location,
		out:       out,
		alarms:    make(map[string]Alarm),
		rang:      make(chan Alarm, 8),
	}
}

// Now returns the current time in the clock's time zone. Alarm hours &
// minutes are read in that zone.
func (c *Clock) Now() time.Time {
	return time.Now().In(c.location)
}

// Start starts the scheduler, alarms only ring while it's running
func (c *Clock) Start() {
	c.scheduler.StartAsync()
}

func (c *Clock) Stop() {
	c.scheduler.Stop()
}

// Handle sets the alarm described by a platform.SetAlarm request
func (c *Clock) Handle(req platform.Request) error {
	setAlarm, ok := req.(platform.SetAlarm)
	if !ok {
		return fmt.Errorf("alarm clock can't handle %v requests", req.Kind())
	}

	_, err := c.Set(setAlarm.Hour, setAlarm.Minute, setAlarm.Label)
	return err
}

// Set schedules an alarm for the next hour:minute & returns it
func (c *Clock) Set(hour, minute int, label string) (Alarm, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Alarm{}, fmt.Errorf("invalid alarm time %02d:%02d", hour, minute)
	}

	tag := fmt.Sprintf("alarm_%v", uuid.NewString())
	job, err := c.scheduler.Every(1).Day().
		At(fmt.Sprintf("%02d:%02d", hour, minute)).
		LimitRunsTo(1).
		Tag(tag).
		Do(c.ring, tag)
	if err != nil {
		return Alarm{}, fmt.Errorf("unable to set alarm: %v", err)
	}

	alarm := Alarm{Tag: tag, Label: label, At: job.NextRun()}

	c.mu.Lock()
	c.alarms[tag] = alarm
	c.mu.Unlock()

	logg.Infof("alarm %q set for %v", label, alarm.At.Format("15:04"))
	return alarm, nil
}

// Pending returns the alarms that haven't rung yet, soonest first
func (c *Clock) Pending() []Alarm {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := make([]Alarm, 0, len(c.alarms))
	for _, alarm := range c.alarms {
		pending = append(pending, alarm)
	}

	sort.Slice(pending, func(i, j int) bool { return pending[i].At.Before(pending[j].At) })
	return pending
}

// Wait blocks until the next alarm rings or ctx is done
func (c *Clock) Wait(ctx context.Context) (Alarm, error) {
	select {
	case alarm := <-c.rang:
		return alarm, nil
	case <-ctx.Done():
		return Alarm{}, ctx.Err()
	}
}

func (c *Clock) ring(tag string) {
	c.mu.Lock()
	alarm, ok := c.alarms[tag]
	delete(c.alarms, tag)
	c.mu.Unlock()

	if !ok {
		return
	}

	fmt.Fprintf(c.out, "%s %s\n", colors.Red("[alarm]"), colors.Bold(alarm.Label))

	select {
	case c.rang <- alarm:
	default:
		logg.Warnf("alarm %q rang with nobody waiting", alarm.Label)
	}
}
