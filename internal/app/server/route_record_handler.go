package server

import (
	"net/http"

	"ixfguard/internal/auth"
	"ixfguard/internal/domain"
	"ixfguard/internal/ghostpeer"
)

func (a *api) savePrefix(w http.ResponseWriter, r *http.Request) {
	var pfx domain.IXLanPrefix
	if !decodeJSON(w, r, &pfx) {
		return
	}
	if err := a.deps.Pipeline.SavePrefix(r.Context(), auth.FromContext(r.Context()), &pfx); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pfx)
}

type peeringResponse struct {
	domain.NetworkIXLan
	Resolution *ghostpeer.Outcome `json:"resolution,omitempty"`
}

func (a *api) savePeering(w http.ResponseWriter, r *http.Request) {
	var n domain.NetworkIXLan
	if !decodeJSON(w, r, &n) {
		return
	}
	outcome, err := a.deps.Pipeline.SavePeering(r.Context(), auth.FromContext(r.Context()), &n)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	resp := peeringResponse{NetworkIXLan: n}
	if !outcome.Empty() {
		resp.Resolution = outcome
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *api) saveNetwork(w http.ResponseWriter, r *http.Request) {
	var n domain.Network
	if !decodeJSON(w, r, &n) {
		return
	}
	if err := a.deps.Pipeline.SaveNetwork(r.Context(), auth.FromContext(r.Context()), &n); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (a *api) saveContact(w http.ResponseWriter, r *http.Request) {
	var c domain.NetworkContact
	if !decodeJSON(w, r, &c) {
		return
	}
	if err := a.deps.Pipeline.SaveContact(r.Context(), auth.FromContext(r.Context()), &c); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type exchangeRequest struct {
	domain.InternetExchange
	IXLan *domain.IXLan `json:"ixlan,omitempty"`
}

func (a *api) saveExchange(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ix := req.InternetExchange
	if ix.ID == 0 && req.IXLan == nil {
		req.IXLan = &domain.IXLan{}
	}
	if err := a.deps.Pipeline.SaveExchange(r.Context(), auth.FromContext(r.Context()), &ix, req.IXLan); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exchangeRequest{InternetExchange: ix, IXLan: req.IXLan})
}
