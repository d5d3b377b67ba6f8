package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"majesty_backend/internal/gate"
)

var gateManager *gate.Manager

func InitGateController(m *gate.Manager) {
	gateManager = m
}

func gateSession(c *fiber.Ctx) (*gate.Session, error) {
	sessionID := c.Get("X-Session-ID")
	if sessionID == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "X-Session-ID header is required")
	}
	return gateManager.Session(c.UserContext(), sessionID)
}

func gateStateResponse(s *gate.Session) fiber.Map {
	state := s.State()
	return fiber.Map{
		"state":        state.String(),
		"show_modal":   state == gate.StatePrompting,
		"is_submitted": state == gate.StateOpenUngated,
	}
}

// CreateVisitorSession issues a session ID for a fresh browser tab and
// returns the initial gate state.
func CreateVisitorSession(c *fiber.Ctx) error {
	sessionID := uuid.New().String()

	session, err := gateManager.Session(c.UserContext(), sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": sessionID,
		"gate":       gateStateResponse(session),
	})
}

// GetGateState reports the gate for the requesting session. Reading the
// state also applies the auto-prompt policy, so polling this endpoint
// re-opens the modal for unsubmitted sessions on the configured
// interval.
func GetGateState(c *fiber.Ctx) error {
	session, err := gateSession(c)
	if err != nil {
		return err
	}
	return c.JSON(gateStateResponse(session))
}

type InterceptInput struct {
	Interaction gate.Interaction `json:"interaction"`
	Action      gate.Action      `json:"action"`
}

// InterceptInteraction classifies a pointer interaction. Only gated
// actions are intercepted; for those the action is parked on the
// session and the mandatory modal opens. Ambiguous interactions pass
// through so gating can never trap a visitor.
func InterceptInteraction(c *fiber.Ctx) error {
	session, err := gateSession(c)
	if err != nil {
		return err
	}

	input := new(InterceptInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	category := gate.Classify(input.Interaction)
	if category != gate.CategoryGatedAction {
		return c.JSON(fiber.Map{
			"intercepted": false,
			"category":    category.String(),
		})
	}

	decision := session.RequestGatedAction(input.Action)
	if decision == gate.DecisionExecuted {
		return c.JSON(fiber.Map{
			"intercepted": false,
			"category":    category.String(),
		})
	}

	return c.JSON(fiber.Map{
		"intercepted": true,
		"category":    category.String(),
		"gate":        gateStateResponse(session),
	})
}

// DismissGate closes the modal without submitting. The pending action
// is dropped and never fires.
func DismissGate(c *fiber.Ctx) error {
	session, err := gateSession(c)
	if err != nil {
		return err
	}

	session.Dismiss()

	return c.JSON(fiber.Map{
		"gate": gateStateResponse(session),
	})
}

// completeGateSession marks the gate satisfied after a successful
// mandatory-inquiry submission and hands back the action to resume.
// Completion also releases the live session; later requests rebuild it
// from the persisted flag.
func completeGateSession(c *fiber.Ctx, sessionID string) *gate.Action {
	if gateManager == nil {
		return nil
	}

	resumed, err := gateManager.Complete(c.UserContext(), sessionID)
	if err != nil {
		// Losing the persisted flag only means a re-prompt after reload.
		log.Printf("Could not complete gate for session %s: %v", sessionID, err)
	}
	return resumed
}
