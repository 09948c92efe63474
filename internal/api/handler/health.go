package handler

import "net/http"

// Health reports liveness. It intentionally checks nothing downstream so a
// slow dependency never makes the process look dead.
func Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
