package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"shithead/internal/app"
	"shithead/internal/config"
	"shithead/internal/domain"
	"shithead/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Module holds the long-lived pieces shared by every RPC call.
type Module struct {
	cfg     config.RuntimeConfig
	svc     *app.Service
	tickets *app.TicketService // nil when no ticket secret is configured
}

// NewModule builds the RPC module. rng may be nil.
func NewModule(cfg config.RuntimeConfig, deck domain.DeckConfig, rng *rand.Rand) *Module {
	m := &Module{cfg: cfg, svc: app.NewService(rng, deck)}
	if cfg.TicketsEnabled() {
		m.tickets = app.NewTicketService(cfg.TicketSecret, cfg.TicketIssuer, cfg.TicketTTL)
	}
	return m
}

// nakamaClient is the part of runtime.NakamaModule the RPCs touch.
type nakamaClient interface {
	storageClient
	notificationSender
}

func (m *Module) dispatcher(nk nakamaClient) *app.Dispatcher {
	return app.NewDispatcher(m.svc, NewNakamaSnapshotStore(nk, m.cfg.StorageCollection), NewNakamaNotifier(nk))
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, m *Module) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcCreateGame: m.rpcCreateGame,
		RpcAction:     m.rpcAction,
		RpcView:       m.rpcView,
		RpcTicket:     m.rpcTicket,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return fmt.Errorf("register rpc %s: %w", id, err)
		}
	}
	return nil
}

// CreateGameRequest is the shd_create payload.
type CreateGameRequest struct {
	TotalPlayers int `json:"total_players"`
}

// ActionRequest is the shd_action payload. The acting player is always the caller.
type ActionRequest struct {
	GameID      string   `json:"game_id"`
	Kind        string   `json:"kind"`
	CardIDs     []string `json:"card_ids"`
	HandCardID  string   `json:"hand_card_id"`
	TableCardID string   `json:"table_card_id"`
}

// ViewRequest is the shd_view payload. A ticket, when present, replaces the session user.
type ViewRequest struct {
	GameID string `json:"game_id"`
	Ticket string `json:"ticket"`
}

// TicketRequest is the shd_ticket payload.
type TicketRequest struct {
	GameID string `json:"game_id"`
	Role   string `json:"role"`
}

// GameResponse is returned by shd_create and shd_action.
type GameResponse struct {
	GameID string              `json:"game_id"`
	Label  domain.LabelPayload `json:"label"`
	View   domain.GameView     `json:"view"`
	Events []string            `json:"events,omitempty"`
}

// TicketResponse is returned by shd_ticket.
type TicketResponse struct {
	Ticket string `json:"ticket"`
}

func (m *Module) rpcCreateGame(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return "", err
	}
	var req CreateGameRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if req.TotalPlayers == 0 {
		req.TotalPlayers = m.cfg.DefaultPlayers
	}

	gameID, out, err := m.dispatcher(nk).Create(ctx, userID, req.TotalPlayers)
	if err != nil {
		if !errors.Is(err, app.ErrNotify) {
			return "", toRuntimeError(logger, RpcCreateGame, userID, err)
		}
		logger.Warn("%s [User:%s]: %v", RpcCreateGame, userID, err)
	}
	logger.Info("%s [User:%s]: created game %s for %d players", RpcCreateGame, userID, gameID, req.TotalPlayers)

	return encodeResponse(GameResponse{
		GameID: gameID,
		Label:  domain.ComputeLabel(out.State),
		View:   out.Views[userID],
		Events: eventKinds(out.Events),
	})
}

func (m *Module) rpcAction(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return "", err
	}
	var req ActionRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if req.GameID == "" {
		return "", runtime.NewError("game_id is required", codeInvalidArgument)
	}

	action := app.Action{
		Kind:        app.ActionKind(strings.ToUpper(req.Kind)),
		PlayerID:    userID,
		CardIDs:     req.CardIDs,
		HandCardID:  req.HandCardID,
		TableCardID: req.TableCardID,
	}
	out, err := m.dispatcher(nk).Handle(ctx, req.GameID, action)
	if err != nil {
		if !errors.Is(err, app.ErrNotify) {
			return "", toRuntimeError(logger, RpcAction, userID, err)
		}
		logger.Warn("%s [User:%s]: %v", RpcAction, userID, err)
	}
	if out.State.Phase == domain.PhaseEnd {
		logger.Info("%s [User:%s]: game %s ended", RpcAction, userID, req.GameID)
	}

	return encodeResponse(GameResponse{
		GameID: req.GameID,
		Label:  domain.ComputeLabel(out.State),
		View:   out.Views[userID],
		Events: eventKinds(out.Events),
	})
}

func (m *Module) rpcView(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req ViewRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}

	gameID, audience := req.GameID, ""
	if req.Ticket != "" {
		if m.tickets == nil {
			return "", runtime.NewError("tickets are not enabled", codeFailedPrecondition)
		}
		claims, err := m.tickets.Verify(req.Ticket)
		if err != nil {
			return "", toRuntimeError(logger, RpcView, "", err)
		}
		gameID = claims.GameID
		if claims.Role == app.TicketRoleSeat {
			audience = claims.Subject
		}
	} else {
		userID, err := requireUser(ctx)
		if err != nil {
			return "", err
		}
		audience = userID
	}
	if gameID == "" {
		return "", runtime.NewError("game_id is required", codeInvalidArgument)
	}

	view, err := m.dispatcher(nk).View(ctx, gameID, audience)
	if err != nil {
		return "", toRuntimeError(logger, RpcView, audience, err)
	}
	return encodeResponse(view)
}

func (m *Module) rpcTicket(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return "", err
	}
	if m.tickets == nil {
		return "", runtime.NewError("tickets are not enabled", codeFailedPrecondition)
	}
	var req TicketRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if req.GameID == "" {
		return "", runtime.NewError("game_id is required", codeInvalidArgument)
	}
	if req.Role == "" {
		req.Role = app.TicketRoleSeat
	}

	state, err := m.dispatcher(nk).State(ctx, req.GameID)
	if err != nil {
		return "", toRuntimeError(logger, RpcTicket, userID, err)
	}
	if req.Role == app.TicketRoleSeat {
		if _, err := state.Player(userID); err != nil {
			return "", runtime.NewError("caller is not seated in this game", codePermissionDenied)
		}
	}

	ticket, err := m.tickets.Issue(req.GameID, userID, req.Role)
	if err != nil {
		return "", runtime.NewError(err.Error(), codeInvalidArgument)
	}
	return encodeResponse(TicketResponse{Ticket: ticket})
}

func requireUser(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("no user in session", codeUnauthenticated)
	}
	return userID, nil
}

func decodePayload(payload string, v any) error {
	if strings.TrimSpace(payload) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("invalid payload", codeInvalidArgument)
	}
	return nil
}

// encodeResponse renders v through a structpb.Struct so every RPC answers
// with the same protojson shape.
func encodeResponse(v any) (string, error) {
	content, err := toContent(v)
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	st, err := structpb.NewStruct(content)
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	raw, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(st)
	if err != nil {
		return "", runtime.NewError("failed to encode response", codeInternal)
	}
	return string(raw), nil
}

func eventKinds(events []app.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, string(ev.Kind))
	}
	return out
}

// toRuntimeError maps engine and storage errors to Nakama status codes.
// Rejected user actions are logged at Warn, defects at Error.
func toRuntimeError(logger runtime.Logger, op, userID string, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvariant):
		logger.Error("%s [User:%s]: invariant violation: %v", op, userID, err)
		return runtime.NewError("internal error", codeInternal)
	case errors.Is(err, domain.ErrInvalidState):
		logger.Warn("%s [User:%s]: %v", op, userID, err)
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	case errors.Is(err, domain.ErrInvalidAction):
		logger.Warn("%s [User:%s]: %v", op, userID, err)
		return runtime.NewError(err.Error(), codeInvalidArgument)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, ports.ErrGameNotFound):
		logger.Warn("%s [User:%s]: %v", op, userID, err)
		return runtime.NewError(err.Error(), codeNotFound)
	case errors.Is(err, ports.ErrConflict):
		logger.Warn("%s [User:%s]: %v", op, userID, err)
		return runtime.NewError("game changed concurrently, retry", codeAborted)
	case errors.Is(err, app.ErrInvalidTicket):
		logger.Warn("%s: %v", op, err)
		return runtime.NewError("invalid ticket", codeUnauthenticated)
	default:
		logger.Error("%s [User:%s]: %v", op, userID, err)
		return runtime.NewError("internal error", codeInternal)
	}
}
