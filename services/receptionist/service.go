package receptionist

import (
	"context"
	"strings"
	"sync"
	"time"

	appointmentRepo "shopdesk/database/repository/appointment"
	"shopdesk/models"
	"shopdesk/services/calendar"
	"shopdesk/services/catalog"
	ai "shopdesk/services/intelligence"
	"shopdesk/services/scheduler"
	"shopdesk/services/session"
)

// collaboratorTimeout bounds every calendar and LLM call. A timeout is
// treated as an ordinary collaborator failure, never as fatal.
const collaboratorTimeout = 10 * time.Second

// suggestedSlotCount is how many open slots the datetime prompt offers.
const suggestedSlotCount = 3

// Service is the top-level conversation controller.
type Service interface {
	HandleMessage(ctx context.Context, sessionID, message string) (string, error)
	ResetSession(ctx context.Context, sessionID string) error
}

// DefaultReceptionistService dispatches each turn to chat mode or the
// booking state machine, owning session load/save at the boundary.
type DefaultReceptionistService struct {
	Catalog      *catalog.Catalog
	Planner      *scheduler.Planner
	Calendar     calendar.Service
	CalendarID   string
	Timezone     string
	Chat         ai.ChatService
	Sessions     session.Store
	Appointments appointmentRepo.AppointmentRepository // optional

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// sessionLock returns the mutex serializing one session's turns. Turns of
// distinct sessions proceed in parallel; within a session every transition
// happens-before the next turn.
func (s *DefaultReceptionistService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

func (s *DefaultReceptionistService) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, collaboratorTimeout)
}

// HandleMessage processes one inbound turn and returns the assistant reply.
func (s *DefaultReceptionistService) HandleMessage(ctx context.Context, sessionID, message string) (string, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	msg := strings.TrimSpace(message)
	sess.AppendTurn(models.RoleUser, msg)

	// Trigger phrase switches to booking mode with a fresh state; the
	// conversation history carries over.
	if sess.Mode != models.ModeBooking && containsTriggerPhrase(msg) {
		sess.Mode = models.ModeBooking
		sess.Booking = &models.BookingState{}
	}

	var reply string
	if sess.Mode == models.ModeBooking {
		if sess.Booking == nil {
			sess.Booking = &models.BookingState{}
		}
		reply = s.handleBooking(ctx, sess, msg)
	} else {
		reply = s.handleChat(ctx, sess)
	}

	sess.AppendTurn(models.RoleAssistant, reply)
	if err := s.Sessions.Save(ctx, sessionID, sess); err != nil {
		return "", err
	}
	return reply, nil
}

// ResetSession drops all stored conversation state for the session.
func (s *DefaultReceptionistService) ResetSession(ctx context.Context, sessionID string) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()
	return s.Sessions.Clear(ctx, sessionID)
}
