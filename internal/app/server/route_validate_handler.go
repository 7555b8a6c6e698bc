package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"ixfguard/internal/auth"
	"ixfguard/internal/database"
	"ixfguard/internal/validation"
)

type valueRequest struct {
	Value  string `json:"value"`
	Region string `json:"region,omitempty"`
}

type prefixRequest struct {
	Prefix  string `json:"prefix"`
	IXLanID uint64 `json:"ixlan_id"`
}

func validationContext(r *http.Request) validation.Context {
	return validation.NewContext(auth.FromContext(r.Context()))
}

func validateAddressSpace(w http.ResponseWriter, r *http.Request) {
	var req prefixRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	prefix, err := validation.ParsePrefix(req.Prefix)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	prefix, err = validation.ValidateAddressSpace(validationContext(r), prefix)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prefix": prefix.String()})
}

func validatePrefixOverlap(w http.ResponseWriter, r *http.Request) {
	var req prefixRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	prefix, err := validation.ParsePrefix(req.Prefix)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	if err := validation.ValidatePrefixOverlap(r.Context(), validationContext(r), database.Prefixes(nil), prefix, req.IXLanID); err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prefix": prefix.String()})
}

func validateIRRAsSet(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	value, err := validation.ValidateIRRAsSet(validationContext(r), req.Value)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"value": value})
}

// validateInfoPrefixes accepts the count as a JSON number, a numeric string,
// a blank string or null.
func validateInfoPrefixes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value json.RawMessage `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	raw := strings.TrimSpace(string(req.Value))
	if raw == "null" {
		raw = ""
	}
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(req.Value, &raw); err != nil {
			writeError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	value, err := validation.ParseInfoPrefixes(raw)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	vc := validationContext(r)
	var count int
	switch r.PathValue("family") {
	case "4", "ipv4":
		count, err = validation.ValidateInfoPrefixes4(vc, value)
	case "6", "ipv6":
		count, err = validation.ValidateInfoPrefixes6(vc, value)
	default:
		writeError(w, "Unknown address family", http.StatusNotFound)
		return
	}
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"value": count})
}

func validatePhone(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vc := validationContext(r)
	region := req.Region
	if region == "" {
		region = vc.Rules.DefaultPhoneRegion
	}
	value, err := validation.ValidatePhoneNumber(vc, req.Value, region)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"value": value})
}
