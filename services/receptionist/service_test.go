package receptionist

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk/models"
	"shopdesk/services/calendar"
	"shopdesk/services/catalog"
	"shopdesk/services/scheduler"
)

// memStore is an in-memory session.Store for tests, mirroring the Redis
// store's copy-on-save behavior via JSON round-trips.
type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, sessionID string) (*models.ConversationSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[sessionID]
	if !ok {
		return models.NewConversationSession(), nil
	}
	var sess models.ConversationSession
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (m *memStore) Save(_ context.Context, sessionID string, sess *models.ConversationSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = raw
	return nil
}

func (m *memStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

// fakeChat records the system preambles it was given.
type fakeChat struct {
	mu      sync.Mutex
	systems []string
	reply   string
	err     error
}

func (f *fakeChat) Complete(_ context.Context, system string, _ []models.Turn) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.systems = append(f.systems, system)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeChat) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.systems)
}

func (f *fakeChat) lastSystem() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.systems) == 0 {
		return ""
	}
	return f.systems[len(f.systems)-1]
}

// fakeCalendar is a calendar.Service backed by a slice of events.
type fakeCalendar struct {
	mu        sync.Mutex
	events    []calendar.Event
	inserted  []calendar.EventInput
	insertErr error
}

func (f *fakeCalendar) ListEvents(_ context.Context, _ string, timeMin, timeMax time.Time) ([]calendar.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []calendar.Event
	for _, ev := range f.events {
		if timeMin.Before(ev.End) && timeMax.After(ev.Start) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeCalendar) InsertEvent(_ context.Context, _ string, ev calendar.EventInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, ev)
	f.events = append(f.events, calendar.Event{Start: ev.Start, End: ev.End})
	return "evt-1", nil
}

func (f *fakeCalendar) clearEvents() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = nil
}

func (f *fakeCalendar) addEvent(start, end time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, calendar.Event{Start: start, End: end})
}

func (f *fakeCalendar) insertedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

// Monday, March 3 2025, 09:00.
var serviceNow = time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

func newTestService(cal *fakeCalendar) (*DefaultReceptionistService, *fakeChat, *memStore) {
	cat := catalog.New([]models.VehicleRecord{
		{Make: "Toyota", Model: "Prius", Year: 2019, Type: "Hybrid", ServiceTimeHours: 2},
		{Make: "Toyota", Model: "Prius", Year: 2022, Type: "Hybrid", ServiceTimeHours: 2},
		{Make: "Toyota", Model: "Prius", Year: 2022, Type: "Plug-in Hybrid", ServiceTimeHours: 2.5},
		{Make: "Toyota", Model: "Corolla", Year: 2019, Type: "Hybrid", ServiceTimeHours: 3},
	})

	planner := scheduler.NewPlanner(cal, "shop-cal", time.UTC, scheduler.NewNaturalDateParser(time.UTC))
	planner.Now = func() time.Time { return serviceNow }

	chat := &fakeChat{reply: "Happy to help with your hybrid battery!"}
	store := newMemStore()

	svc := &DefaultReceptionistService{
		Catalog:    cat,
		Planner:    planner,
		Calendar:   cal,
		CalendarID: "shop-cal",
		Timezone:   "UTC",
		Chat:       chat,
		Sessions:   store,
	}
	return svc, chat, store
}

func send(t *testing.T, svc *DefaultReceptionistService, sessionID, msg string) string {
	t.Helper()
	reply, err := svc.HandleMessage(context.Background(), sessionID, msg)
	require.NoError(t, err)
	return reply
}

func TestChatUsesGenericPreamble(t *testing.T) {
	svc, chat, _ := newTestService(&fakeCalendar{})

	reply := send(t, svc, "s1", "hello, how late are you open?")
	assert.Equal(t, chat.reply, reply)
	assert.Equal(t, genericPreamble, chat.lastSystem())
}

func TestChatUsesVehiclePreamble(t *testing.T) {
	svc, chat, _ := newTestService(&fakeCalendar{})

	send(t, svc, "s1", "how much for a 2019 prius battery?")
	assert.Contains(t, chat.lastSystem(), "2019 Toyota Prius")
	assert.Contains(t, chat.lastSystem(), "2 hours")
}

func TestChatAmbiguousVehicleAnsweredDirectly(t *testing.T) {
	svc, chat, _ := newTestService(&fakeCalendar{})

	reply := send(t, svc, "s1", "I drive a 2022 prius")
	assert.Contains(t, reply, "more than one version")
	assert.Contains(t, reply, "Plug-in Hybrid")
	assert.Equal(t, 0, chat.callCount())
}

func TestChatFailureApologizes(t *testing.T) {
	svc, chat, _ := newTestService(&fakeCalendar{})
	chat.err = context.DeadlineExceeded

	reply := send(t, svc, "s1", "hello")
	assert.Equal(t, apologyReply, reply)
}

func TestTriggerPhraseEntersBooking(t *testing.T) {
	svc, _, _ := newTestService(&fakeCalendar{})

	reply := send(t, svc, "s1", "lets book")
	assert.Equal(t, vehiclePrompt, reply)
}

func TestFullBookingFlow(t *testing.T) {
	cal := &fakeCalendar{}
	svc, chat, _ := newTestService(cal)

	assert.Equal(t, vehiclePrompt, send(t, svc, "s1", "let's book"))

	reply := send(t, svc, "s1", "2019 prius")
	assert.Contains(t, reply, "When would you like to bring it in?")
	assert.Contains(t, reply, "📅")

	assert.Equal(t, namePrompt, send(t, svc, "s1", "March 10 at 2 PM"))
	assert.Equal(t, phonePrompt, send(t, svc, "s1", "John Smith"))

	reply = send(t, svc, "s1", "(512) 555-1234")
	assert.Contains(t, reply, "Here is your appointment info")
	assert.Contains(t, reply, "🚗 Vehicle: 2019 Toyota Prius")
	assert.Contains(t, reply, "👤 Name: John Smith")
	assert.Contains(t, reply, "📞 Phone: (512) 555-1234")
	assert.Contains(t, reply, "02:00 PM on March 10, 2025")

	reply = send(t, svc, "s1", "book now")
	assert.Contains(t, reply, "✅ Appointment booked for 02:00 PM on March 10, 2025")

	require.Equal(t, 1, cal.insertedCount())
	ev := cal.inserted[0]
	assert.Equal(t, "Hybrid Battery Appointment - John Smith", ev.Summary)
	assert.Contains(t, ev.Description, "Vehicle: 2019 Toyota Prius")
	assert.Contains(t, ev.Description, "Phone: (512) 555-1234")
	assert.Equal(t, time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC), ev.Start)
	assert.Equal(t, time.Date(2025, time.March, 10, 16, 0, 0, 0, time.UTC), ev.End)

	// Back in chat mode afterwards, and a new booking starts from scratch.
	send(t, svc, "s1", "thanks!")
	assert.Equal(t, 1, chat.callCount())
	assert.Equal(t, vehiclePrompt, send(t, svc, "s1", "lets book again"))
}

func TestBadNameAndPhoneReprompt(t *testing.T) {
	svc, _, _ := newTestService(&fakeCalendar{})

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")
	send(t, svc, "s1", "March 10 at 2 PM")

	assert.Equal(t, badNameReply, send(t, svc, "s1", "John"))
	assert.Equal(t, phonePrompt, send(t, svc, "s1", "John Smith"))
	assert.Equal(t, badPhoneReply, send(t, svc, "s1", "call me whenever"))
}

func TestInvalidDatetimeReprompts(t *testing.T) {
	svc, _, _ := newTestService(&fakeCalendar{})

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")

	// Unparseable, Sunday, and after-hours inputs all re-request the field.
	assert.Equal(t, badDatetimeReply, send(t, svc, "s1", "whenever"))
	assert.Equal(t, badDatetimeReply, send(t, svc, "s1", "March 9 at 2 PM"))
	assert.Equal(t, badDatetimeReply, send(t, svc, "s1", "March 10 at 5 PM"))
}

func TestConfirmationGateReprompts(t *testing.T) {
	cal := &fakeCalendar{}
	svc, _, _ := newTestService(cal)

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")
	send(t, svc, "s1", "March 10 at 2 PM")
	send(t, svc, "s1", "John Smith")
	send(t, svc, "s1", "(512) 555-1234")

	assert.Equal(t, confirmOrChangeReply, send(t, svc, "s1", "looks good"))
	assert.Equal(t, 0, cal.insertedCount())

	reply := send(t, svc, "s1", "BOOK NOW")
	assert.Contains(t, reply, "✅")
	assert.Equal(t, 1, cal.insertedCount())
}

func TestInsertFailureAllowsRetry(t *testing.T) {
	cal := &fakeCalendar{}
	svc, _, _ := newTestService(cal)

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")
	send(t, svc, "s1", "March 10 at 2 PM")
	send(t, svc, "s1", "John Smith")
	send(t, svc, "s1", "(512) 555-1234")

	cal.mu.Lock()
	cal.insertErr = context.DeadlineExceeded
	cal.mu.Unlock()
	assert.Equal(t, apologyReply, send(t, svc, "s1", "book now"))
	assert.Equal(t, 0, cal.insertedCount())

	cal.mu.Lock()
	cal.insertErr = nil
	cal.mu.Unlock()
	reply := send(t, svc, "s1", "book now")
	assert.Contains(t, reply, "✅")
	assert.Equal(t, 1, cal.insertedCount())
}

func TestBusySlotRejectedAtDatetime(t *testing.T) {
	cal := &fakeCalendar{}
	cal.addEvent(
		time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 10, 16, 0, 0, 0, time.UTC),
	)
	svc, _, _ := newTestService(cal)

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")

	assert.Equal(t, slotTakenReply, send(t, svc, "s1", "March 10 at 3 PM"))
	assert.Equal(t, namePrompt, send(t, svc, "s1", "March 10 at 4 PM"))
}

func TestSameTimeSucceedsOnceConflictClears(t *testing.T) {
	cal := &fakeCalendar{}
	cal.addEvent(
		time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 10, 16, 0, 0, 0, time.UTC),
	)
	svc, _, _ := newTestService(cal)

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")
	assert.Equal(t, slotTakenReply, send(t, svc, "s1", "March 10 at 2 PM"))

	// The conflicting event is cancelled; the same request now goes through.
	cal.clearEvents()
	assert.Equal(t, namePrompt, send(t, svc, "s1", "March 10 at 2 PM"))
}

func TestSlotLostBeforeConfirmation(t *testing.T) {
	cal := &fakeCalendar{}
	svc, _, _ := newTestService(cal)

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")
	send(t, svc, "s1", "March 10 at 2 PM")
	send(t, svc, "s1", "John Smith")
	send(t, svc, "s1", "(512) 555-1234")

	// Another session takes the slot between the summary and the confirmation.
	cal.addEvent(
		time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 10, 16, 0, 0, 0, time.UTC),
	)

	assert.Equal(t, slotLostReply, send(t, svc, "s1", "book now"))
	assert.Equal(t, 0, cal.insertedCount())

	// Name and phone survive; only the datetime is re-collected.
	reply := send(t, svc, "s1", "March 11 at 2 PM")
	assert.Contains(t, reply, "Here is your appointment info")
	assert.Contains(t, reply, "👤 Name: John Smith")

	reply = send(t, svc, "s1", "book now")
	assert.Contains(t, reply, "✅")
	assert.Equal(t, 1, cal.insertedCount())
}

func TestTryDateDoesNotConsumeDatetimeTurn(t *testing.T) {
	svc, _, _ := newTestService(&fakeCalendar{})

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")

	reply := send(t, svc, "s1", "try March 4")
	assert.Contains(t, reply, "available times for March 04")
	assert.Contains(t, reply, "🕒")

	// Still waiting for a datetime.
	assert.Equal(t, badDatetimeReply, send(t, svc, "s1", "hmm"))
	assert.Equal(t, namePrompt, send(t, svc, "s1", "March 10 at 2 PM"))
}

func TestResetSession(t *testing.T) {
	svc, _, store := newTestService(&fakeCalendar{})

	send(t, svc, "s1", "lets book")
	send(t, svc, "s1", "2019 prius")
	require.NoError(t, svc.ResetSession(context.Background(), "s1"))

	store.mu.Lock()
	_, ok := store.data["s1"]
	store.mu.Unlock()
	assert.False(t, ok)

	// The next message starts over in chat mode.
	reply := send(t, svc, "s1", "hello")
	assert.NotEqual(t, badDatetimeReply, reply)
}

func TestSessionsAreIndependent(t *testing.T) {
	svc, chat, _ := newTestService(&fakeCalendar{})

	send(t, svc, "a", "lets book")
	reply := send(t, svc, "b", "hello")
	assert.Equal(t, chat.reply, reply)

	// Session a is still mid-booking.
	assert.Equal(t, vehiclePrompt, send(t, svc, "a", "no idea"))
}
