package httpservice

import "encoding/json"
import "net/http"

import "github.com/google/uuid"


func (httpService *HTTPService) GenerateRequestUUID() string {
	id := uuid.New()
	return id.String()
}

func (httpService *HTTPService) respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	responseJSON, encErr := json.Marshal(payload)
	if encErr != nil {
		http.Error(w, "failed to encode JSON response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(responseJSON)
}

func (httpService *HTTPService) respondError(w http.ResponseWriter, statusCode int, message string, requestId string) {
	httpService.respondJSON(w, statusCode, ErrorResponse{ Error: message, RequestId: requestId })
}
