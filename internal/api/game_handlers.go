package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ntbapp/ntb-server/internal/game"
)

func (s *Server) registerGameRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getState",
		Method:      http.MethodGet,
		Path:        "/api/v1/state",
		Summary:     "Get session state",
		Description: "Returns the score, streak, and current round state. Starts a new session when the token is missing or unknown.",
		Tags:        []string{"Game"},
	}, s.handleGetState)

	huma.Register(s.api, huma.Operation{
		OperationID: "submitGuess",
		Method:      http.MethodPost,
		Path:        "/api/v1/guess",
		Summary:     "Submit a guess",
		Description: "Checks a name guess against the hidden player. A correct guess reveals the player and scores the round.",
		Tags:        []string{"Game"},
	}, s.handleGuess)

	huma.Register(s.api, huma.Operation{
		OperationID: "requestHint",
		Method:      http.MethodPost,
		Path:        "/api/v1/hint",
		Summary:     "Request a hint",
		Description: "Advances the hint ladder for the current round",
		Tags:        []string{"Game"},
	}, s.handleHint)

	huma.Register(s.api, huma.Operation{
		OperationID: "giveUp",
		Method:      http.MethodPost,
		Path:        "/api/v1/giveup",
		Summary:     "Give up",
		Description: "Reveals the hidden player, scores the round as a miss, and resets the streak",
		Tags:        []string{"Game"},
	}, s.handleGiveUp)

	huma.Register(s.api, huma.Operation{
		OperationID: "nextRound",
		Method:      http.MethodPost,
		Path:        "/api/v1/next",
		Summary:     "Deal the next round",
		Description: "Moves the session to the next hidden player",
		Tags:        []string{"Game"},
	}, s.handleNext)
}

// === DTOs ===

// SessionInput carries the session token cookie. It is optional: a
// missing or stale token starts a fresh session.
type SessionInput struct {
	Token string `cookie:"ntb_session" required:"false" doc:"Game session token"`
}

// StateOutput returns the session snapshot, setting the session cookie
// when a new session was started.
type StateOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      game.State
}

type GuessRequest struct {
	Guess string `json:"guess" maxLength:"100" doc:"Player name guess"`
}

type GuessInput struct {
	Token string `cookie:"ntb_session" required:"false" doc:"Game session token"`
	Body  GuessRequest
}

// === Handlers ===

// resolveSession maps a token to its session, creating one when needed.
// The returned cookie string is empty unless a new session was started.
func (s *Server) resolveSession(token string) (*game.Session, string, error) {
	sess, err := s.manager.GetOrCreate(token)
	if err != nil {
		return nil, "", err
	}
	if sess.ID == token {
		return sess, "", nil
	}
	return sess, sessionSetCookie(sess.ID), nil
}

func (s *Server) handleGetState(_ context.Context, input *SessionInput) (*StateOutput, error) {
	sess, setCookie, err := s.resolveSession(input.Token)
	if err != nil {
		return nil, err
	}
	return &StateOutput{SetCookie: setCookie, Body: sess.State()}, nil
}

func (s *Server) handleGuess(_ context.Context, input *GuessInput) (*StateOutput, error) {
	sess, setCookie, err := s.resolveSession(input.Token)
	if err != nil {
		return nil, err
	}

	if !s.guessLimiter.Allow(sess.ID) {
		s.logger.Warn("Guess rate limit exceeded", "session", sess.ID)
		return nil, huma.Error429TooManyRequests("Too many guesses. Please slow down.")
	}

	return &StateOutput{
		SetCookie: setCookie,
		Body:      sess.Guess(strings.TrimSpace(input.Body.Guess)),
	}, nil
}

func (s *Server) handleHint(_ context.Context, input *SessionInput) (*StateOutput, error) {
	sess, setCookie, err := s.resolveSession(input.Token)
	if err != nil {
		return nil, err
	}
	return &StateOutput{SetCookie: setCookie, Body: sess.Hint()}, nil
}

func (s *Server) handleGiveUp(_ context.Context, input *SessionInput) (*StateOutput, error) {
	sess, setCookie, err := s.resolveSession(input.Token)
	if err != nil {
		return nil, err
	}
	return &StateOutput{SetCookie: setCookie, Body: sess.GiveUp()}, nil
}

func (s *Server) handleNext(_ context.Context, input *SessionInput) (*StateOutput, error) {
	sess, setCookie, err := s.resolveSession(input.Token)
	if err != nil {
		return nil, err
	}

	state, err := sess.Next()
	if err != nil {
		return nil, err
	}
	return &StateOutput{SetCookie: setCookie, Body: state}, nil
}
