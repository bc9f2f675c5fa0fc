package receptionist

import (
	"context"

	"go.uber.org/zap"

	"shopdesk/models"
	"shopdesk/services/calendar"
	"shopdesk/services/catalog"
	"shopdesk/services/scheduler"
	"shopdesk/utils"
)

// handleBooking advances the booking dialogue by one turn. The active state
// is derived from the first unset field, in the fixed order vehicle →
// datetime → name → phone → confirmation. Invalid input never mutates state;
// the same field is simply re-requested.
func (s *DefaultReceptionistService) handleBooking(ctx context.Context, sess *models.ConversationSession, msg string) string {
	st := sess.Booking

	switch {
	case st.Vehicle == nil:
		if reply, ok := s.fillVehicle(st, msg); !ok {
			return reply
		}
	case st.Datetime == nil:
		if reply, ok := s.fillDatetime(ctx, st, msg); !ok {
			return reply
		}
	case st.Name == nil:
		name, ok := ParseFullName(msg)
		if !ok {
			return badNameReply
		}
		st.Name = &name
	case st.Phone == nil:
		phone, ok := ParsePhone(msg)
		if !ok {
			return badPhoneReply
		}
		st.Phone = &phone
	default:
		return s.handleConfirmation(ctx, sess, msg)
	}

	// A field was just filled; either recap for confirmation or ask for the
	// next one.
	if st.Complete() {
		return s.requestConfirmation(st)
	}
	return s.promptForNext(ctx, st)
}

// fillVehicle resolves the customer's vehicle answer against the catalog.
// ok is false when the state did not advance and reply must be sent as-is.
func (s *DefaultReceptionistService) fillVehicle(st *models.BookingState, msg string) (string, bool) {
	res := s.Catalog.Match(msg)
	switch res.Outcome {
	case catalog.MatchExact:
		desc := res.Vehicle.Description()
		hours := res.Vehicle.ServiceTimeHours
		st.Vehicle = &desc
		st.Duration = &hours
		return "", true
	case catalog.MatchAmbiguous:
		return ambiguousVehicleReply(res.Candidates), false
	default:
		return vehiclePrompt, false
	}
}

// fillDatetime validates a requested time against shop hours and the shared
// calendar. A "try <date>" probe is answered without consuming the turn as a
// datetime answer.
func (s *DefaultReceptionistService) fillDatetime(ctx context.Context, st *models.BookingState, msg string) (string, bool) {
	cctx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	if reply, handled, err := s.Planner.HandleTryDate(cctx, msg, *st.Duration); handled {
		if err != nil {
			utils.GetLogger().Error("try-date availability lookup failed", zap.Error(collaboratorErr("calendar", err)))
			return apologyReply, false
		}
		return reply, false
	}

	dt := s.Planner.ParseDateTime(msg)
	if dt == nil || !scheduler.WithinShopHours(*dt, *st.Duration) {
		return badDatetimeReply, false
	}

	end := dt.Add(scheduler.ServiceDuration(*st.Duration))
	available, err := s.Planner.IsSlotAvailable(cctx, *dt, end)
	if err != nil {
		utils.GetLogger().Error("availability check failed", zap.Error(collaboratorErr("calendar", err)))
		return apologyReply, false
	}
	if !available {
		return slotTakenReply, false
	}

	st.Datetime = dt
	return "", true
}

// requestConfirmation emits the itemized summary and arms the confirmation
// gate. Re-entering here (after a field was re-requested) re-issues the
// summary with the updated values.
func (s *DefaultReceptionistService) requestConfirmation(st *models.BookingState) string {
	st.ConfirmationRequested = true
	return bookingSummary(st)
}

// handleConfirmation books on the exact confirmation phrase and reprompts on
// anything else. Availability is re-validated immediately before insertion:
// the earlier check and the insert are not atomic, and the calendar is the
// only serialization point between concurrent sessions.
func (s *DefaultReceptionistService) handleConfirmation(ctx context.Context, sess *models.ConversationSession, msg string) string {
	st := sess.Booking
	if !st.ConfirmationRequested {
		return s.requestConfirmation(st)
	}
	if !isConfirmation(msg) {
		return confirmOrChangeReply
	}

	cctx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	start := *st.Datetime
	end := start.Add(scheduler.ServiceDuration(*st.Duration))

	available, err := s.Planner.IsSlotAvailable(cctx, start, end)
	if err != nil {
		utils.GetLogger().Error("pre-insert availability re-check failed", zap.Error(collaboratorErr("calendar", err)))
		return apologyReply
	}
	if !available {
		// Lost the race for the slot. Explicitly reset the datetime and ask
		// for a new one; everything else stays collected.
		st.Datetime = nil
		st.ConfirmationRequested = false
		return slotLostReply
	}

	eventID, err := s.Calendar.InsertEvent(cctx, s.CalendarID, calendar.EventInput{
		Summary:     "Hybrid Battery Appointment - " + *st.Name,
		Description: "Vehicle: " + *st.Vehicle + "\nPhone: " + *st.Phone,
		Start:       start,
		End:         end,
		Timezone:    s.Timezone,
	})
	if err != nil {
		// Not committed: confirmation stays pending and a retried BOOK NOW
		// goes through this path again, so at most one event is created.
		utils.GetLogger().Error("event insertion failed", zap.Error(collaboratorErr("calendar", err)))
		return apologyReply
	}

	s.recordAppointment(ctx, st, eventID)

	reply := bookedReply(st)
	sess.Mode = models.ModeChat
	sess.Booking = nil
	return reply
}

// promptForNext asks for the first still-unset field.
func (s *DefaultReceptionistService) promptForNext(ctx context.Context, st *models.BookingState) string {
	switch {
	case st.Vehicle == nil:
		return vehiclePrompt
	case st.Datetime == nil:
		return s.datetimePrompt(ctx, *st.Duration)
	case st.Name == nil:
		return namePrompt
	default:
		return phonePrompt
	}
}

// datetimePrompt suggests the soonest open slots alongside the format hint.
// A calendar failure degrades to the plain prompt rather than blocking the
// conversation.
func (s *DefaultReceptionistService) datetimePrompt(ctx context.Context, serviceHours float64) string {
	cctx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	slots, err := s.Planner.FindNextAvailableSlots(cctx, serviceHours, suggestedSlotCount)
	if err != nil {
		utils.GetLogger().Warn("slot suggestions unavailable", zap.Error(collaboratorErr("calendar", err)))
		slots = nil
	}
	suggestions := make([]string, 0, len(slots))
	for _, slot := range slots {
		suggestions = append(suggestions, scheduler.FormatSlot(slot))
	}
	return datetimePromptFor(suggestions)
}

// recordAppointment persists the shop's copy of the booking. Best effort:
// the calendar event is already committed, so a records failure is only
// logged.
func (s *DefaultReceptionistService) recordAppointment(ctx context.Context, st *models.BookingState, eventID string) {
	if s.Appointments == nil {
		return
	}
	cctx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	_, err := s.Appointments.Create(cctx, models.Appointment{
		Vehicle:         *st.Vehicle,
		CustomerName:    *st.Name,
		CustomerPhone:   *st.Phone,
		Start:           *st.Datetime,
		End:             st.Datetime.Add(scheduler.ServiceDuration(*st.Duration)),
		CalendarEventID: eventID,
	})
	if err != nil {
		utils.GetLogger().Error("failed to record appointment", zap.String("eventID", eventID), zap.Error(err))
	}
}
