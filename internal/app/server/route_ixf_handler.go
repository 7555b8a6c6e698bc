package server

import (
	"errors"
	"io"
	"net/http"
	"net/netip"
	"strconv"

	"ixfguard/internal/database"
	"ixfguard/internal/validation"
)

func parseID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func parseOptionalAddr(raw string) (netip.Addr, error) {
	if raw == "" {
		return netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, err
	}
	return addr.Unmap(), nil
}

// getIXFPeer answers whether the cached member list of a LAN lists asn at
// the given addresses.
func (a *api) getIXFPeer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, "Invalid ixlan id", http.StatusBadRequest)
		return
	}
	query := r.URL.Query()
	asn, err := strconv.ParseUint(query.Get("asn"), 10, 32)
	if err != nil {
		writeError(w, "Invalid asn", http.StatusBadRequest)
		return
	}
	ip4, err := parseOptionalAddr(query.Get("ip4"))
	if err != nil {
		writeError(w, "Invalid ip4", http.StatusBadRequest)
		return
	}
	ip6, err := parseOptionalAddr(query.Get("ip6"))
	if err != nil {
		writeError(w, "Invalid ip6", http.StatusBadRequest)
		return
	}

	lan, err := database.FindIXLan(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	found4, found6, err := a.deps.Resolver.PeerExists(r.Context(), lan, uint32(asn), ip4, ip6)
	if err != nil {
		if errors.Is(err, validation.ErrIXFDataUnavailable) {
			writeError(w, "IX-F data unavailable", http.StatusServiceUnavailable)
			return
		}
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ipaddr4": found4, "ipaddr6": found6})
}

// putIXFMemberList stores the raw member list of a LAN as exported by the
// exchange.
func (a *api) putIXFMemberList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, "Invalid ixlan id", http.StatusBadRequest)
		return
	}
	lan, err := database.FindIXLan(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if lan.IXFMemberListURL == "" {
		writeError(w, "IXLan has no IX-F member list url", http.StatusConflict)
		return
	}

	doc, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.deps.Snapshots.Publish(r.Context(), lan.IXFMemberListURL, doc); err != nil {
		writeFailure(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
