package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anuragkar/scambait/internal/detect"
	"github.com/anuragkar/scambait/internal/domain"
	"github.com/anuragkar/scambait/internal/intel"
	"github.com/anuragkar/scambait/internal/llm"
	"github.com/anuragkar/scambait/internal/persona"
	"github.com/anuragkar/scambait/internal/report"
)

// describeImagePrompt asks the vision model for a literal transcription so
// the classifier and extractor can work on the image content as text.
const describeImagePrompt = "You are a forensic analyst reviewing an image sent by a potential scammer. " +
	"Transcribe ALL visible text in the image exactly as written. " +
	"Also note any logos, branding, QR codes, URLs, phone numbers, account numbers, " +
	"UPI IDs, or other suspicious elements. Be thorough and literal."

const describeImageMaxTokens = 500

// EngagementConfig carries the orchestration thresholds.
type EngagementConfig struct {
	// MinMessages is the counterpart message count that qualifies a scam
	// session for the final report on its own.
	MinMessages int
	// MinIntelligenceItems qualifies a scam session early once enough
	// actionable intelligence has been captured.
	MinIntelligenceItems int
	// VisionProvider selects the provider used to transcribe image
	// payloads. Empty selects the router default.
	VisionProvider string
	// TypingDelay paces replies so the persona reads as a human typist.
	TypingDelay persona.DelayConfig
}

// EngagementService runs one honeypot turn end to end: session state,
// scam classification, intelligence extraction, the persona reply and,
// once the session qualifies, final report delivery.
type EngagementService struct {
	store    domain.SessionStore
	detector *detect.Detector
	agent    *persona.Agent
	reporter *report.Reporter
	archive  domain.ReportArchive
	router   *llm.Router
	cfg      EngagementConfig
}

// NewEngagementService creates the engagement orchestrator. archive may be
// nil when report archiving is disabled.
func NewEngagementService(
	store domain.SessionStore,
	detector *detect.Detector,
	agent *persona.Agent,
	reporter *report.Reporter,
	archive domain.ReportArchive,
	router *llm.Router,
	cfg EngagementConfig,
) *EngagementService {
	if cfg.MinMessages <= 0 {
		cfg.MinMessages = 5
	}
	if cfg.MinIntelligenceItems <= 0 {
		cfg.MinIntelligenceItems = 2
	}
	return &EngagementService{
		store:    store,
		detector: detector,
		agent:    agent,
		reporter: reporter,
		archive:  archive,
		router:   router,
		cfg:      cfg,
	}
}

// stallReply answers a turn whose pipeline failed outright. Refusing to
// respond would disclose that something on this side noticed.
const stallReply = "Sorry, can you repeat that?"

// HandleMessage processes one scammer turn and produces the persona reply.
// Classifier, extractor and persona failures all degrade to safe defaults
// inside their packages, so the caller always receives a reply; only a
// session store failure on load surfaces as an error. A panic anywhere in
// the pipeline degrades the turn to a stall reply for the same reason.
func (s *EngagementService) HandleMessage(ctx context.Context, req *domain.ChatRequest) (resp *domain.ChatResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("session_id", req.SessionID).
				Any("panic", r).
				Msg("Engagement turn panicked, degrading to stall reply")
			resp = &domain.ChatResponse{
				Status:                "success",
				Reply:                 stallReply,
				ExtractedIntelligence: domain.Intelligence{}.Summary(),
				AgentNotes:            "Processing degraded",
			}
			err = nil
		}
	}()

	start := time.Now()

	// 1. Load the session, creating a fresh one on first contact
	session, err := s.store.Load(ctx, req.SessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to load session %s: %w", req.SessionID, err)
		}
		session = domain.NewSession(req.SessionID)
		s.seedFromHistory(session, req.ConversationHistory)
	}

	// 2. Record the inbound message. History before this turn feeds the
	// classifier and the persona.
	inbound := req.Message
	if inbound.Timestamp == 0 {
		inbound.Timestamp = time.Now().UnixMilli()
	}
	prior := session.History
	session.Append(inbound)

	// 3. Transcribe image payloads so the downstream stages see text
	analysis := inbound
	if payload, ok := intel.DetectImage(inbound.Text); ok {
		analysis.Text = s.describeImage(ctx, payload)
	}

	// 4. Classify the turn and fold the verdict into the session
	assessment := s.detector.Classify(ctx, analysis, prior)
	session.RecordAssessment(assessment)

	log.Info().
		Str("session_id", session.ID).
		Bool("is_scam", assessment.IsScam).
		Float64("confidence", assessment.Confidence).
		Str("stage", string(assessment.Stage)).
		Msg("Message classified")

	// 5. Harvest intelligence from the scammer text
	if added := session.Intelligence.Merge(intel.Extract(analysis.Text)); added > 0 {
		log.Info().
			Str("session_id", session.ID).
			Int("new_findings", added).
			Int("total_findings", len(session.Intelligence)).
			Msg("Extracted intelligence")
	}

	// 6. Produce the reply. Confirmed scams get the baiting persona, all
	// other turns get a neutral clarification.
	var reply domain.Reply
	var notes string
	if session.ScamConfirmed {
		reply = s.agent.GenerateReply(ctx, analysis, prior, req.Metadata, session.Intelligence)
		notes = persona.Notes(session.Categories, analysis.Text)
		if assessment.Reasoning != "" {
			notes = notes + ". " + assessment.Reasoning
		}
	} else {
		reply = domain.Reply{Text: persona.NeutralReply(session.MessageCount - 1), Source: domain.ReplyFallback}
		notes = "No scam detected"
	}
	session.Append(domain.Message{Sender: domain.SenderAgent, Text: reply.Text, Timestamp: time.Now().UnixMilli()})

	// 7. Persist. The reply still goes out when the store write fails.
	session.Touch()
	if err := s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Msg("Failed to persist session")
	}

	// 8. Deliver the final report once the session first qualifies
	s.maybeReport(ctx, session, notes)

	// 9. Pace the reply like a human typist
	persona.Sleep(ctx, persona.TypingDelay(s.cfg.TypingDelay, len(reply.Text)))

	log.Info().
		Str("session_id", session.ID).
		Bool("scam_detected", session.ScamConfirmed).
		Int("message_count", session.MessageCount).
		Str("reply_source", string(reply.Source)).
		Dur("elapsed", time.Since(start)).
		Msg("Engagement turn completed")

	return &domain.ChatResponse{
		Status:                 "success",
		Reply:                  reply.Text,
		ScamDetected:           session.ScamConfirmed,
		TotalMessagesExchanged: session.MessageCount,
		ExtractedIntelligence:  session.Intelligence.Summary(),
		AgentNotes:             notes,
	}, nil
}

// seedFromHistory primes a brand-new session from a caller-supplied
// transcript. Past turns join the stored history and scammer turns are
// mined for intelligence, but the counterpart counter stays at zero so the
// report trigger only counts messages this service handled itself.
func (s *EngagementService) seedFromHistory(session *domain.Session, history []domain.Message) {
	if len(history) == 0 {
		return
	}
	for _, msg := range history {
		session.History = append(session.History, msg)
		if msg.Sender == domain.SenderScammer {
			session.Intelligence.Merge(intel.Extract(msg.Text))
		}
	}
	log.Info().
		Str("session_id", session.ID).
		Int("messages", len(history)).
		Int("findings", len(session.Intelligence)).
		Msg("Seeded new session from caller history")
}

// describeImage turns an image payload into analyzable text through a
// vision-capable provider. Without one the raw payload passes through as
// opaque text.
func (s *EngagementService) describeImage(ctx context.Context, payload intel.ImagePayload) string {
	provider, err := s.router.GetVisionProvider(s.cfg.VisionProvider)
	if err != nil {
		log.Warn().Err(err).Msg("No vision provider for image message")
		return payload.DataURI
	}

	resp, err := provider.DescribeImage(ctx, llm.VisionRequest{
		Prompt:    describeImagePrompt,
		DataURI:   payload.DataURI,
		MaxTokens: describeImageMaxTokens,
	}, "")
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.Name()).Msg("Vision transcription failed")
		return "[Image content]: (Could not process image)"
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "[Image content]: (Could not process image)"
	}
	log.Info().
		Str("provider", provider.Name()).
		Str("media_type", payload.MediaType).
		Int("chars", len(text)).
		Msg("Transcribed image payload")
	return "[Image content]: " + text
}

// maybeReport delivers the final intelligence report when a confirmed scam
// session first meets either threshold. Delivery is terminal on success and
// on exhausted retries alike, so the callback never sees a session twice.
func (s *EngagementService) maybeReport(ctx context.Context, session *domain.Session, notes string) {
	if session.Reported || !session.ScamConfirmed || !s.reporter.Enabled() {
		return
	}
	if session.MessageCount < s.cfg.MinMessages && session.Intelligence.ActionableCount() < s.cfg.MinIntelligenceItems {
		return
	}

	log.Info().
		Str("session_id", session.ID).
		Int("message_count", session.MessageCount).
		Int("actionable_items", session.Intelligence.ActionableCount()).
		Msg("Session qualifies, delivering final report")

	rep := &domain.Report{
		SessionID:              session.ID,
		ScamDetected:           session.ScamConfirmed,
		TotalMessagesExchanged: session.MessageCount,
		ExtractedIntelligence:  session.Intelligence.Summary(),
		AgentNotes:             notes,
	}
	outcome := s.reporter.Deliver(ctx, rep)

	session.Reported = true
	session.ReportOutcome = outcome.Status
	session.Touch()
	if err := s.store.Save(ctx, session); err != nil {
		log.Error().Err(err).Str("session_id", session.ID).Msg("Failed to persist report outcome")
	}

	if s.archive != nil {
		if err := s.archive.Record(ctx, rep, outcome); err != nil {
			log.Error().Err(err).Str("session_id", session.ID).Msg("Failed to archive final report")
		}
	}
}
