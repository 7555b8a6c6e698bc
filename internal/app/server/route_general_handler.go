package server

import (
	"net/http"

	"ixfguard/internal/app/version"
	"ixfguard/internal/config"
)

func getVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, version.Get())
}

func getGlobalSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, config.GetConfig())
}

func saveGlobalSettings(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if !decodeJSON(w, r, &cfg) {
		return
	}
	if err := config.SetConfig(cfg); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, config.GetConfig())
}
