package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/hd-derive/derive"
	"github.com/AlexZinkM/hd-derive/internal/model"

	"github.com/rs/zerolog/log"
)

// maxNumDerive caps how many addresses one HTTP request may derive
const maxNumDerive = 1000

// DeriveHandler serves read-only derivation endpoints for the configured master key
type DeriveHandler struct {
	deriver   derive.Deriver
	secret    model.MasterSecret
	numDerive int
}

// NewDeriveHandler creates a new DeriveHandler. secret is the master key or mnemonic used for every request.
func NewDeriveHandler(d derive.Deriver, secret model.MasterSecret, numDerive int) (*DeriveHandler, error) {
	if d == nil {
		return nil, errors.New("deriver not set")
	}
	if secret.Empty() {
		return nil, errors.New("master secret not set")
	}
	if numDerive < 1 {
		numDerive = 1
	}
	return &DeriveHandler{
		deriver:   d,
		secret:    secret,
		numDerive: numDerive,
	}, nil
}

// Derive handles POST /derive
// @Summary      Derive addresses
// @Description  Derives addresses of the configured master key for one coin. Private keys are never returned.
// @Tags         derive
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeriveRequest  true  "Derivation parameters"
// @Success      200      {object}  model.DeriveResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Failure      504      {object}  model.ErrorResponse
// @Router       /derive [post]
func (h *DeriveHandler) Derive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.DeriveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	coin, ok := model.ParseCoin(req.Coin)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_request", "unsupported coin")
		return
	}

	numDerive := req.NumDerive
	if numDerive == 0 {
		numDerive = h.numDerive
	}
	if numDerive < 0 || numDerive > maxNumDerive {
		writeError(w, http.StatusBadRequest, "invalid_request", "numderive must not be negative or above 1000")
		return
	}

	dreq := model.DerivationRequest{
		Coin:       coin,
		Cols:       publicColumns(req.Cols),
		NumDerive:  numDerive,
		StartIndex: req.StartIndex,
		Path:       req.Path,
	}
	h.secret.Apply(&dreq)

	records, err := h.deriver.Derive(r.Context(), dreq)
	if err != nil {
		status, code := errorStatus(err)
		writeError(w, status, code, err.Error())
		return
	}

	resp := model.DeriveResponse{
		Coin:      string(coin),
		Addresses: make([]model.AddressEntry, 0, len(records)),
	}
	for i := range records {
		records[i].Wipe()
		entry := model.AddressEntry{
			Path:    records[i].Path,
			Address: records[i].Address,
			PubKey:  records[i].PubKey,
		}
		if req.QR {
			qr, err := generateQRCode(entry.Address)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "qr", err.Error())
				return
			}
			entry.QR = qr
		}
		resp.Addresses = append(resp.Addresses, entry)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Coins handles GET /coins
// @Summary      List supported coins
// @Tags         derive
// @Produce      json
// @Success      200  {object}  model.CoinsResponse
// @Router       /coins [get]
func (h *DeriveHandler) Coins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	coins := model.SupportedCoins()
	resp := model.CoinsResponse{Coins: make([]string, 0, len(coins))}
	for _, c := range coins {
		resp.Coins = append(resp.Coins, string(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Health handles GET /healthz
func (h *DeriveHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// publicColumns drops private columns from the request; address is always included
func publicColumns(cols []string) []string {
	if len(cols) == 0 {
		return []string{model.ColPath, model.ColAddress, model.ColPubKey}
	}
	out := make([]string, 0, len(cols)+1)
	hasAddress := false
	for _, c := range cols {
		switch c {
		case model.ColPrivKey, model.ColXprv:
			continue
		case model.ColAddress:
			hasAddress = true
		}
		out = append(out, c)
	}
	if !hasAddress {
		out = append(out, model.ColAddress)
	}
	return out
}

// errorStatus maps derivation errors to HTTP status and error code
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, derive.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request"
	case derive.IsTimeoutError(err):
		return http.StatusGatewayTimeout, "timeout"
	case derive.IsExternalToolError(err):
		return http.StatusBadGateway, "tool_error"
	case derive.IsMalformedOutputError(err):
		return http.StatusBadGateway, "malformed_output"
	case derive.IsSchemaError(err):
		return http.StatusBadGateway, "schema_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}
