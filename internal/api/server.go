package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rorical/RoriStake/internal/chain"
	"github.com/Rorical/RoriStake/internal/ledger"
)

const (
	statusStaked = chain.StatusStaked
	statusError  = chain.StatusError

	reasonStakeFailed    = "stake_failed"
	reasonInvalidPayload = "invalid_payload"
	reasonInternal       = "internal_error"
)

// stakeRequest requires both fields; a missing amount is not zero.
type stakeRequest struct {
	WalletID string   `json:"wallet_id"`
	Amount   *float64 `json:"amount"`
}

type stakeResponse struct {
	Status string  `json:"status"`
	Amount float64 `json:"amount,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

type balanceResponse struct {
	WalletID string  `json:"wallet_id"`
	Balance  float64 `json:"balance"`
}

// Server exposes the staking endpoint over HTTP.
type Server struct {
	log     *zap.Logger
	ledger  ledger.Ledger
	metrics *Metrics
}

func NewServer(log *zap.Logger, l ledger.Ledger, m *Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = NewMetrics(nil)
	}
	return &Server{log: log, ledger: l, metrics: m}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+chain.StakePath, s.stake)
	mux.HandleFunc("GET /api/chain/stakes/{wallet}", s.balance)
	return mux
}

func (s *Server) stake(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var body stakeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.WalletID) == "" || body.Amount == nil {
		s.metrics.observe(reasonInvalidPayload, 0, time.Since(start))
		writeJSON(w, http.StatusBadRequest, stakeResponse{Status: statusError, Reason: reasonInvalidPayload})
		return
	}
	req := chain.StakeRequest{WalletID: body.WalletID, Amount: *body.Amount}

	bal, err := s.ledger.Stake(r.Context(), req.WalletID, req.Amount)
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		s.log.Info("stake rejected", zap.String("wallet_id", req.WalletID), zap.Float64("amount", req.Amount))
		s.metrics.observe(reasonStakeFailed, 0, time.Since(start))
		writeJSON(w, http.StatusOK, stakeResponse{Status: statusError, Reason: reasonStakeFailed})
		return
	case err != nil:
		s.log.Error("stake ledger", zap.String("wallet_id", req.WalletID), zap.Error(err))
		s.metrics.observe(reasonInternal, 0, time.Since(start))
		writeJSON(w, http.StatusInternalServerError, stakeResponse{Status: statusError, Reason: reasonInternal})
		return
	}

	s.log.Info("staked",
		zap.String("wallet_id", req.WalletID),
		zap.Float64("amount", req.Amount),
		zap.Float64("balance", bal),
	)
	s.metrics.observe(statusStaked, req.Amount, time.Since(start))
	writeJSON(w, http.StatusOK, stakeResponse{Status: statusStaked, Amount: req.Amount})
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	walletID := r.PathValue("wallet")
	bal, err := s.ledger.Balance(r.Context(), walletID)
	if err != nil {
		s.log.Error("balance lookup", zap.String("wallet_id", walletID), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{WalletID: walletID, Balance: bal})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
