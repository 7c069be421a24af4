package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/marcelsud/webhook-courier/subscription"
)

/* HTTP layer DTOs for the subscription API
 * Separate from domain entities to avoid leaking internal structure
 */

// subscriptionRequest represents a create request
type subscriptionRequest struct {
	TargetURL string   `json:"target_url"`
	Secret    *string  `json:"secret,omitempty"`
	Events    []string `json:"events,omitempty"`
}

// subscriptionPatchRequest represents a partial update; nil leaves a field unchanged
type subscriptionPatchRequest struct {
	TargetURL *string   `json:"target_url,omitempty"`
	Secret    *string   `json:"secret,omitempty"`
	Events    *[]string `json:"events,omitempty"`
}

// subscriptionResponse represents a subscription in the API
type subscriptionResponse struct {
	ID        string   `json:"id"`
	TargetURL string   `json:"target_url"`
	Secret    *string  `json:"secret,omitempty"`
	Events    []string `json:"events,omitempty"`
}

func toSubscriptionResponse(sub subscription.Subscription) subscriptionResponse {
	return subscriptionResponse{
		ID:        sub.ID,
		TargetURL: sub.TargetURL,
		Secret:    sub.Secret,
		Events:    sub.Events,
	}
}

// postSubscription handles POST /subscriptions
func postSubscription(svc subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req subscriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidPayload, "invalid JSON body")
			return
		}
		defer r.Body.Close()

		sub, err := svc.Create(r.Context(), req.TargetURL, req.Secret, req.Events)
		if err != nil {
			if errors.Is(err, subscription.ErrInvalidTargetURL) {
				writeError(w, http.StatusBadRequest, KindInvalidTargetURL, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			return
		}

		writeJSON(w, http.StatusCreated, toSubscriptionResponse(sub))
	})
}

// getSubscription handles GET /subscriptions/{id}
func getSubscription(svc subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		sub, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, subscription.ErrNotFound) {
				writeError(w, http.StatusNotFound, KindSubscriptionNotFound,
					"subscription not found: "+id)
				return
			}
			writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
	})
}

// listSubscriptions handles GET /subscriptions
func listSubscriptions(svc subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 100)
		offset := queryInt(r, "offset", 0)

		subs, err := svc.List(r.Context(), limit, offset)
		if err != nil {
			writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			return
		}

		responses := make([]subscriptionResponse, 0, len(subs))
		for _, sub := range subs {
			responses = append(responses, toSubscriptionResponse(sub))
		}
		writeJSON(w, http.StatusOK, responses)
	})
}

// patchSubscription handles PATCH /subscriptions/{id}
func patchSubscription(svc subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req subscriptionPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, KindInvalidPayload, "invalid JSON body")
			return
		}
		defer r.Body.Close()

		sub, err := svc.Patch(r.Context(), id, subscription.Update{
			TargetURL: req.TargetURL,
			Secret:    req.Secret,
			Events:    req.Events,
		})
		if err != nil {
			switch {
			case errors.Is(err, subscription.ErrNotFound):
				writeError(w, http.StatusNotFound, KindSubscriptionNotFound,
					"subscription not found: "+id)
			case errors.Is(err, subscription.ErrInvalidTargetURL):
				writeError(w, http.StatusBadRequest, KindInvalidTargetURL, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			}
			return
		}

		writeJSON(w, http.StatusOK, toSubscriptionResponse(sub))
	})
}

// deleteSubscription handles DELETE /subscriptions/{id}
func deleteSubscription(svc subscription.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, subscription.ErrNotFound) {
				writeError(w, http.StatusNotFound, KindSubscriptionNotFound,
					"subscription not found: "+id)
				return
			}
			writeError(w, http.StatusInternalServerError, KindStoreUnavailable, err.Error())
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
