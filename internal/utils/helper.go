package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"paybyrd-bridge/internal/logger"

	"go.uber.org/zap"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Warn("failed to encode json response", zap.Error(err))
	}
}

// WriteJSONMessage writes the {"message": "..."} body the webhook endpoint
// answers with for every outcome.
func WriteJSONMessage(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]string{"message": message})
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}

// ParsePositiveInt parses a base-10 integer greater than zero.
func ParsePositiveInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '+' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
