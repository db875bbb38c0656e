package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"sheetr/internal/sheets"
)

// writeJSON writes a JSON body with a 200 status.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeStoreError maps store failures to HTTP statuses. A missing tab is a
// configuration problem and reported as not found, with the available tabs
// in the message; everything else is a remote-operation failure.
func writeStoreError(w http.ResponseWriter, err error) {
	var notFound *sheets.SheetNotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
