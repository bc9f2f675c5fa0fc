package receptionist

import (
	"context"

	"go.uber.org/zap"

	"shopdesk/models"
	"shopdesk/services/catalog"
	"shopdesk/utils"
)

// handleChat answers a non-booking turn. The matcher runs over the latest
// user message; an exact match shapes the preamble, an ambiguous one is
// clarified directly without consulting the LLM.
func (s *DefaultReceptionistService) handleChat(ctx context.Context, sess *models.ConversationSession) string {
	latest := sess.LatestUserMessage()
	res := s.Catalog.Match(latest)

	if res.Outcome == catalog.MatchAmbiguous {
		return ambiguousVehicleReply(res.Candidates)
	}

	system := genericPreamble
	if res.Outcome == catalog.MatchExact {
		system = vehiclePreamble(*res.Vehicle)
	}

	cctx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	reply, err := s.Chat.Complete(cctx, system, sess.History)
	if err != nil {
		utils.GetLogger().Error("chat completion failed", zap.Error(collaboratorErr("llm", err)))
		return apologyReply
	}
	return reply
}
