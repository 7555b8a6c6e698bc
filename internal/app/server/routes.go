package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"ixfguard/internal/auth"
	"ixfguard/internal/database"
	"ixfguard/internal/ghostpeer"
	"ixfguard/internal/ixf"
	"ixfguard/internal/records"
	"ixfguard/internal/validation"
)

const maxBodyBytes = 8 << 20

// Dependencies are the services the handlers call into.
type Dependencies struct {
	Pipeline  *records.Pipeline
	Resolver  *ghostpeer.Resolver
	Snapshots *ixf.Source
}

type api struct {
	deps Dependencies
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps validation failures to 400 with the offending field,
// unknown records to 404 and everything else to 500.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var fe *validation.FieldError
	switch {
	case errors.As(err, &fe):
		body := map[string]string{
			"error": fe.Message,
			"field": fe.Field,
		}
		if fe.Kind != nil {
			body["kind"] = fe.Kind.Error()
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, database.ErrNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	default:
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func NewRouter(deps Dependencies) http.Handler {
	a := &api{deps: deps}

	router := http.NewServeMux()
	router.HandleFunc("GET /version", getVersion)
	router.Handle("GET /global/settings", auth.IsAdmin(http.HandlerFunc(getGlobalSettings)))
	router.Handle("POST /global/settings", auth.IsAdmin(http.HandlerFunc(saveGlobalSettings)))

	router.HandleFunc("POST /validate/address-space", validateAddressSpace)
	router.HandleFunc("POST /validate/prefix-overlap", validatePrefixOverlap)
	router.HandleFunc("POST /validate/irr-as-set", validateIRRAsSet)
	router.HandleFunc("POST /validate/info-prefixes/{family}", validateInfoPrefixes)
	router.HandleFunc("POST /validate/phone", validatePhone)

	router.HandleFunc("GET /ixlan/{id}/ixf/peer", a.getIXFPeer)
	router.Handle("PUT /ixlan/{id}/ixf", auth.IsAdmin(http.HandlerFunc(a.putIXFMemberList)))

	router.Handle("POST /ix", auth.RequireAuth(http.HandlerFunc(a.saveExchange)))
	router.Handle("POST /ixpfx", auth.RequireAuth(http.HandlerFunc(a.savePrefix)))
	router.Handle("POST /netixlan", auth.RequireAuth(http.HandlerFunc(a.savePeering)))
	router.Handle("POST /net", auth.RequireAuth(http.HandlerFunc(a.saveNetwork)))
	router.Handle("POST /poc", auth.RequireAuth(http.HandlerFunc(a.saveContact)))

	return enableCORS(auth.WithPrincipal(router))
}

func OpenRoutes(port int, deps Dependencies) error {
	log.Debug("Routes opened")

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: NewRouter(deps),
	}

	log.Infof("Starting ixfguard on port :%d", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
