package receptionist

import (
	"fmt"
	"strings"

	"shopdesk/models"
)

// confirmationPhrase is the exact (case-insensitive, trimmed) utterance that
// commits a booking.
const confirmationPhrase = "BOOK NOW"

const (
	vehiclePrompt = "Okay, lets get you booked! Please provide your full vehicle information " +
		"so our staff can properly book you. Use this format: YEAR MAKE MODEL"

	namePrompt = "Almost there! Can I have your full name? Use this format: FIRST LAST"

	phonePrompt = "Last thing! What's your phone number? Use this format: (xxx) xxx-xxxx"

	badNameReply = "I'm sorry, but I did not get your name! Please provide your full name " +
		"in the format: FIRST LAST"

	badPhoneReply = "So sorry, but I did not get your phone number! Please provide your " +
		"phone number in the format: (xxx) xxx-xxxx"

	badDatetimeReply = "Please provide a valid time during shop hours (Monday-Saturday " +
		"10 AM-6 PM) in the format: MONTH DAY TIME."

	slotTakenReply = "That time is already booked. Please choose another."

	slotLostReply = "So sorry, that time was just taken by another customer. " +
		"Please choose a different time."

	confirmOrChangeReply = "Please type BOOK NOW to confirm, or let me know if something " +
		"needs to be changed."

	apologyReply = "I'm so sorry, something went wrong on our end. Please try that again " +
		"in a moment."
)

// datetimePromptFor builds the ask-for-a-time prompt, embedding suggested
// slots when the calendar lookup produced any.
func datetimePromptFor(suggestions []string) string {
	base := "When would you like to bring it in? Please specify a date and time. " +
		"Use this format: MONTH DAY TIME (e.g., August 3 at 2 PM)."
	if len(suggestions) == 0 {
		return base + " Unfortunately, we couldn't find open time slots in the next few " +
			"weeks, so please try again later or contact the shop."
	}
	return base + fmt.Sprintf("\n\n📅 Our soonest available appointments are: %s. "+
		"You can also check availability for other days by typing 'Try MONTH DAY' "+
		"(e.g., Try August 10)", strings.Join(suggestions, ", "))
}

// ambiguousVehicleReply lists the catalog candidates for the customer to
// pick from.
func ambiguousVehicleReply(candidates []models.VehicleRecord) string {
	var sb strings.Builder
	sb.WriteString("I found more than one version of that vehicle. Could you let me know which one you have?\n")
	for _, v := range candidates {
		fmt.Fprintf(&sb, "- %s (%s)\n", v.Description(), v.Type)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// bookingSummary is the itemized recap shown before confirmation.
func bookingSummary(st *models.BookingState) string {
	return fmt.Sprintf("Here is your appointment info:\n\n"+
		"📅 Date & Time: %s\n"+
		"🚗 Vehicle: %s\n"+
		"👤 Name: %s\n"+
		"📞 Phone: %s\n\n"+
		"If everything looks good, type BOOK NOW to confirm your appointment.",
		st.Datetime.Format("03:04 PM on January 02, 2006"),
		*st.Vehicle, *st.Name, *st.Phone)
}

func bookedReply(st *models.BookingState) string {
	return fmt.Sprintf("✅ Appointment booked for %s. We are looking forward to seeing you!",
		st.Datetime.Format("03:04 PM on January 02, 2006"))
}

// vehiclePreamble frames the LLM when the customer's vehicle is identified.
func vehiclePreamble(v models.VehicleRecord) string {
	return fmt.Sprintf("You are a helpful assistant for Austin Hybrid Battery. "+
		"Customer can enter Booking Mode at any time by typing 'Lets book' - you must "+
		"tell them this if service options are being discussed. "+
		"The customer is asking about a %s. "+
		"Our service history data shows that a battery replacement for the customer's "+
		"vehicle should take approximately %g hours.", v.Description(), v.ServiceTimeHours)
}

// genericPreamble frames the LLM when the vehicle is still unknown.
const genericPreamble = "You are a helpful assistant for Austin Hybrid Battery. " +
	"The customer asked about service, but their vehicle was unclear. Ask them for year/make/model. " +
	"If the customer asks a question or statement that has nothing to do with vehicle maintenance, " +
	"cleverly steer their input back towards the fact that you are here to help with their hybrid " +
	"battery needs. Always try to guide the customer towards scheduling a battery replacement with us. " +
	"You do not have the ability to find available appointment times unless the customer wants to " +
	"enter booking mode. Customer can enter 'Booking Mode' at any time by saying 'Lets book' and you " +
	"must inform them of this if any services are being discussed."
