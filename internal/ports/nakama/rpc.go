package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"heenenweer/internal/app"
	"heenenweer/internal/codec"
	"heenenweer/internal/config"
	"heenenweer/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// CodeRequest carries a share code.
type CodeRequest struct {
	Code string `json:"code"`
}

// CodeResponse returns a share code.
type CodeResponse struct {
	Code string `json:"code"`
}

// SaveRequest saves either a structured match or a share code under ID.
// An empty ID asks the server to assign one.
type SaveRequest struct {
	ID    string        `json:"id,omitempty"`
	Match *domain.Match `json:"match,omitempty"`
	Code  string        `json:"code,omitempty"`
}

// IDRequest addresses a saved match.
type IDRequest struct {
	ID string `json:"id"`
}

// LoadResponse is a saved match in both forms.
type LoadResponse struct {
	ID    string        `json:"id"`
	Code  string        `json:"code"`
	Match *domain.Match `json:"match"`
}

// ListResponse lists saved matches.
type ListResponse struct {
	Matches []app.MatchSummary `json:"matches"`
}

// EarningsRequest settles the match behind Code with the named strategy.
type EarningsRequest struct {
	Code     string `json:"code"`
	Strategy string `json:"strategy,omitempty"`
}

// EarningsResponse lists each player's settlement in roster order.
type EarningsResponse struct {
	Strategy app.PayoutStrategy `json:"strategy"`
	Earnings []app.Earning      `json:"earnings"`
}

// StandingsResponse ranks players of a match.
type StandingsResponse struct {
	Standings []app.Standing `json:"standings"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := map[string]func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error){
		RpcMatchEncode:    RpcEncodeMatch,
		RpcMatchDecode:    RpcDecodeMatch,
		RpcMatchSave:      RpcSaveMatch,
		RpcMatchLoad:      RpcLoadMatch,
		RpcMatchList:      RpcListMatches,
		RpcMatchDelete:    RpcDeleteMatch,
		RpcMatchStandings: RpcStandings,
		RpcMatchEarnings:  RpcEarnings,
	}
	for id, fn := range rpcs {
		if err := initializer.RegisterRpc(id, fn); err != nil {
			return err
		}
	}
	return nil
}

// RpcEncodeMatch packs a structured match into a share code.
//
// Payload: structured match JSON.
// Returns: {"code": "..."}.
func RpcEncodeMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var m domain.Match
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return "", runtime.NewError("invalid match payload", codeInvalidArgument)
	}

	code, err := app.ShareCode(&m)
	if err != nil {
		logger.Warn("RpcEncodeMatch: rejected match %q: %v", m.Name, err)
		return "", toRuntimeError(err)
	}
	return marshalResponse(logger, CodeResponse{Code: code})
}

// RpcDecodeMatch restores the structured match behind a share code.
//
// Payload: {"code": "..."}.
// Returns: structured match JSON.
func RpcDecodeMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req CodeRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	m, err := app.ParseShareCode(req.Code)
	if err != nil {
		logger.Warn("RpcDecodeMatch: rejected code: %v", err)
		return "", toRuntimeError(err)
	}
	return marshalResponse(logger, m)
}

// RpcSaveMatch stores a match for the calling user.
func RpcSaveMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req SaveRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	m := req.Match
	if m == nil {
		if req.Code == "" {
			return "", runtime.NewError("match or code is required", codeInvalidArgument)
		}
		decoded, err := app.ParseShareCode(req.Code)
		if err != nil {
			return "", toRuntimeError(err)
		}
		m = decoded
	}

	summary, err := newService(nk).SaveMatch(ctx, userID, req.ID, m)
	if err != nil {
		logger.Error("RpcSaveMatch [User:%s]: Failed to save match: %v", userID, err)
		return "", toRuntimeError(err)
	}

	logger.Info("RpcSaveMatch [User:%s]: Saved match %s", userID, summary.ID)
	return marshalResponse(logger, summary)
}

// RpcLoadMatch returns one saved match of the calling user.
func RpcLoadMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	req, err := parseIDRequest(payload)
	if err != nil {
		return "", err
	}

	m, code, err := newService(nk).LoadMatch(ctx, userID, req.ID)
	if err != nil {
		logger.Error("RpcLoadMatch [User:%s]: Failed to load match %s: %v", userID, req.ID, err)
		return "", toRuntimeError(err)
	}
	return marshalResponse(logger, LoadResponse{ID: req.ID, Code: code, Match: m})
}

// RpcListMatches lists the calling user's saved matches.
func RpcListMatches(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	matches, err := newService(nk).ListMatches(ctx, userID)
	if err != nil {
		logger.Error("RpcListMatches [User:%s]: Failed to list matches: %v", userID, err)
		return "", toRuntimeError(err)
	}
	return marshalResponse(logger, ListResponse{Matches: matches})
}

// RpcDeleteMatch removes one saved match of the calling user.
func RpcDeleteMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	req, err := parseIDRequest(payload)
	if err != nil {
		return "", err
	}

	if err := newService(nk).DeleteMatch(ctx, userID, req.ID); err != nil {
		logger.Error("RpcDeleteMatch [User:%s]: Failed to delete match %s: %v", userID, req.ID, err)
		return "", toRuntimeError(err)
	}

	logger.Info("RpcDeleteMatch [User:%s]: Deleted match %s", userID, req.ID)
	return "{}", nil
}

// RpcStandings ranks the players of the match behind a share code.
func RpcStandings(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req CodeRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	m, err := app.ParseShareCode(req.Code)
	if err != nil {
		return "", toRuntimeError(err)
	}
	return marshalResponse(logger, StandingsResponse{Standings: app.Standings(m)})
}

// RpcEarnings settles the match behind a share code.
//
// Payload: {"code": "...", "strategy": "winner_takes_all" | "second_place_breaks_even"}.
// Returns: {"strategy": "...", "earnings": [...]}.
func RpcEarnings(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req EarningsRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}

	strategy, err := app.ParsePayoutStrategy(req.Strategy)
	if err != nil {
		return "", toRuntimeError(err)
	}
	m, err := app.ParseShareCode(req.Code)
	if err != nil {
		return "", toRuntimeError(err)
	}
	earnings, err := app.Earnings(m, strategy)
	if err != nil {
		return "", toRuntimeError(err)
	}
	return marshalResponse(logger, EarningsResponse{Strategy: strategy, Earnings: earnings})
}

func newService(nk runtime.NakamaModule) *app.Service {
	store := NewMatchStorageAdapter(nk, config.GetStorageCollection(), config.GetListPageSize())
	return app.NewService(store, config.GetMaxSavedMatches())
}

func parseIDRequest(payload string) (IDRequest, error) {
	var req IDRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return req, runtime.NewError("invalid payload", codeInvalidArgument)
	}
	if req.ID == "" {
		return req, runtime.NewError("id is required", codeInvalidArgument)
	}
	return req, nil
}

func marshalResponse(logger runtime.Logger, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to marshal response: %v", err)
		return "", runtime.NewError("internal error", codeInternal)
	}
	return string(b), nil
}

// toRuntimeError maps app and codec errors to Nakama RPC errors.
func toRuntimeError(err error) error {
	switch {
	case errors.Is(err, app.ErrNoUser):
		return runtime.NewError("user id is required", codeUnauthenticated)
	case errors.Is(err, app.ErrMatchNotFound):
		return runtime.NewError(err.Error(), codeNotFound)
	case errors.Is(err, app.ErrTooManyMatches):
		return runtime.NewError(err.Error(), codeResourceExhausted)
	case errors.Is(err, domain.ErrInvalidMatch),
		errors.Is(err, app.ErrInvalidShareCode),
		errors.Is(err, app.ErrUnknownPayoutStrategy),
		errors.Is(err, codec.ErrTruncated),
		errors.Is(err, codec.ErrCorrupt),
		errors.Is(err, codec.ErrValueRange),
		errors.Is(err, codec.ErrFieldOverflow):
		return runtime.NewError(err.Error(), codeInvalidArgument)
	default:
		return runtime.NewError("internal error", codeInternal)
	}
}
