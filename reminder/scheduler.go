package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultInterval between due checks
const DefaultInterval = 30 * time.Second

// AcknowledgeMessage is shown in-app for every fired reminder
const AcknowledgeMessage = "You have a reminder due!"

// Notifier delivers system level notifications
type Notifier interface {
	// RequestPermission is asked once before any Notify call. A false result
	// disables system notifications for the scheduler's lifetime.
	RequestPermission(ctx context.Context) (bool, error)
	Notify(ctx context.Context, title, body string) error
}

// Acknowledger shows a short lived in-app message
type Acknowledger interface {
	Acknowledge(message string)
}

// Options for a Scheduler
type Options struct {
	Notifier     Notifier
	Acknowledger Acknowledger
	Logger       zerolog.Logger
	// Interval between due checks, DefaultInterval when zero
	Interval time.Duration
	// Location whose calendar repeating reminders advance on, time.Local when nil
	Location *time.Location
}

// Scheduler owns the reminder collection and fires reminders when they are due
type Scheduler struct {
	store    Store
	notifier Notifier
	ack      Acknowledger
	log      zerolog.Logger
	interval time.Duration
	loc      *time.Location
	now      func() time.Time

	mu        sync.Mutex
	reminders []*Reminder
	granted   bool

	// runMu guards the timer handles; ticks only take mu
	runMu  sync.Mutex
	cron   *cron.Cron
	cancel func()
}

// NewScheduler with an empty collection; call Load or Start to read the store
func NewScheduler(store Store, opts Options) *Scheduler {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		store:    store,
		notifier: opts.Notifier,
		ack:      opts.Acknowledger,
		log:      opts.Logger,
		interval: interval,
		loc:      loc,
		now:      time.Now,
	}
}

// Init asks the notifier for permission and reports whether system
// notifications will be sent
func (s *Scheduler) Init(ctx context.Context) bool {
	granted := false
	if s.notifier != nil {
		var err error
		granted, err = s.notifier.RequestPermission(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("notification permission request failed")
			granted = false
		}
	}

	if !granted {
		s.log.Info().Msg("system notifications unavailable, falling back to in-app acknowledgments")
	}

	s.mu.Lock()
	s.granted = granted
	s.mu.Unlock()

	return granted
}

// Load the collection from the store. Any failure leaves an empty collection.
func (s *Scheduler) Load(ctx context.Context) {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load reminders, starting empty")
		loaded = nil
	}

	seen := make(map[uuid.UUID]struct{}, len(loaded))
	reminders := make([]*Reminder, 0, len(loaded))
	for _, r := range loaded {
		if r == nil {
			continue
		}

		if err := r.validate(); err != nil {
			s.log.Warn().Err(err).Stringer("id", r.ID).Str("title", r.Title).Msg("dropping invalid stored reminder")
			continue
		}

		if _, ok := seen[r.ID]; ok || r.ID == uuid.Nil {
			r.ID = newID()
		}
		seen[r.ID] = struct{}{}

		reminders = append(reminders, r)
	}

	s.mu.Lock()
	s.reminders = reminders
	s.mu.Unlock()

	s.log.Debug().Int("count", len(reminders)).Msg("reminders loaded")
}

// Add a reminder and persist the collection
func (s *Scheduler) Add(ctx context.Context, fields Fields) (*Reminder, error) {
	fields, err := fields.normalize()
	if err != nil {
		return nil, err
	}

	r := &Reminder{
		ID:                  newID(),
		Title:               fields.Title,
		Kind:                fields.Kind,
		At:                  fields.At,
		Repeat:              fields.Repeat,
		NotificationEnabled: fields.NotificationEnabled,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = append(s.reminders, r)
	s.persistLocked(ctx)

	return r.copy(), nil
}

// Edit the reminder with the given id in place. The id and the notified flag
// are kept. Reports false when no reminder has that id.
func (s *Scheduler) Edit(ctx context.Context, id uuid.UUID, fields Fields) (bool, error) {
	fields, err := fields.normalize()
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findLocked(id)
	if r == nil {
		return false, nil
	}

	r.Title = fields.Title
	r.Kind = fields.Kind
	r.At = fields.At
	r.Repeat = fields.Repeat
	r.NotificationEnabled = fields.NotificationEnabled

	s.persistLocked(ctx)

	return true, nil
}

// Remove the reminder with the given id. Reports false when no reminder has that id.
func (s *Scheduler) Remove(ctx context.Context, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reminders {
		if r.ID != id {
			continue
		}

		s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
		s.persistLocked(ctx)

		return true
	}

	return false
}

// Get a copy of the reminder with the given id, nil if there is none
func (s *Scheduler) Get(id uuid.UUID) *Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findLocked(id)
	if r == nil {
		return nil
	}

	return r.copy()
}

// List copies of all reminders, earliest first
func (s *Scheduler) List() []*Reminder {
	s.mu.Lock()
	list := make([]*Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		list = append(list, r.copy())
	}
	s.mu.Unlock()

	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].At.Equal(list[j].At) {
			return list[i].At.Before(list[j].At)
		}

		return list[i].ID.String() < list[j].ID.String()
	})

	return list
}

// Scan fires every reminder that is due at now and returns copies of the fired
// records. Successors of repeating reminders are inserted but not examined in
// the same pass. Scan does not persist; Tick does.
func (s *Scheduler) Scan(ctx context.Context, now time.Time) []*Reminder {
	s.mu.Lock()
	granted := s.granted

	var fired []*Reminder
	var spawned []*Reminder
	for _, r := range s.reminders {
		if !r.Due(now) {
			continue
		}

		r.Notified = true
		fired = append(fired, r.copy())

		if n, ok := r.next(s.loc); ok {
			spawned = append(spawned, n)
		}
	}
	s.reminders = append(s.reminders, spawned...)
	s.mu.Unlock()

	for _, r := range fired {
		s.deliver(ctx, r, granted)
	}

	return fired
}

func (s *Scheduler) deliver(ctx context.Context, r *Reminder, granted bool) {
	log := s.log.With().Stringer("id", r.ID).Str("title", r.Title).Logger()

	if r.NotificationEnabled && granted {
		err := s.notifier.Notify(ctx, r.Title, r.NotificationBody())
		if err != nil {
			log.Warn().Err(err).Msg("failed to send notification")
		}
	}

	if s.ack != nil {
		s.ack.Acknowledge(AcknowledgeMessage)
	}

	log.Info().Time("datetime", r.At).Str("repeat", string(r.Repeat)).Msg("reminder fired")
}

// Tick scans at the current time and persists if anything fired
func (s *Scheduler) Tick(ctx context.Context) int {
	fired := s.Scan(ctx, s.now())
	if len(fired) == 0 {
		return 0
	}

	s.mu.Lock()
	s.persistLocked(ctx)
	s.mu.Unlock()

	return len(fired)
}

// Start requests notification permission, loads the collection, runs one tick
// and then ticks on the configured interval until Stop is called or ctx is done
func (s *Scheduler) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cron != nil {
		return errors.New("scheduler already started")
	}

	s.Init(ctx)
	s.Load(ctx)

	tickCtx, cancel := context.WithCancel(ctx)

	logger := cronLogger{log: s.log}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	c.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		if tickCtx.Err() != nil {
			return
		}

		s.Tick(tickCtx)
	}))

	s.cron = c
	s.cancel = cancel

	s.Tick(tickCtx)
	c.Start()

	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")

	return nil
}

// Stop the timer and wait for a running tick to finish
func (s *Scheduler) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cron == nil {
		return
	}

	s.cancel()
	<-s.cron.Stop().Done()

	s.cron = nil
	s.cancel = nil

	s.log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) findLocked(id uuid.UUID) *Reminder {
	for _, r := range s.reminders {
		if r.ID == id {
			return r
		}
	}

	return nil
}

func (s *Scheduler) persistLocked(ctx context.Context) {
	snapshot := make([]*Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		snapshot = append(snapshot, r.copy())
	}

	err := s.store.Save(ctx, snapshot)
	if err != nil {
		s.log.Error().Err(err).Int("count", len(snapshot)).Msg("failed to persist reminders")
	}
}

func (r *Reminder) copy() *Reminder {
	c := *r
	return &c
}

type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
