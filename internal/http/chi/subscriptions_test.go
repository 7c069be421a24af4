package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marcelsud/webhook-courier/subscription"
	"github.com/marcelsud/webhook-courier/subscription/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func crudDeps(svc subscription.UseCase) Deps {
	return Deps{
		Subscriptions: svc,
		MaxBodyBytes:  1 << 20,
	}
}

func TestPostSubscription(t *testing.T) {
	t.Run("creates and replies 201", func(t *testing.T) {
		svc := mocks.NewUseCase(t)
		secret := "whsec_abc"
		svc.On("Create", mock.Anything, "https://example.com/hooks", &secret, []string{"a.b"}).
			Return(subscription.Subscription{
				ID:        testSubID,
				TargetURL: "https://example.com/hooks",
				Secret:    &secret,
				Events:    []string{"a.b"},
			}, nil)

		h := Handlers(crudDeps(svc))

		req := httptest.NewRequest(http.MethodPost, "/subscriptions",
			strings.NewReader(`{"target_url":"https://example.com/hooks","secret":"whsec_abc","events":["a.b"]}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp subscriptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, testSubID, resp.ID)
		assert.Equal(t, []string{"a.b"}, resp.Events)
	})

	t.Run("invalid target url is a 400", func(t *testing.T) {
		svc := mocks.NewUseCase(t)
		svc.On("Create", mock.Anything, "nope", (*string)(nil), []string(nil)).
			Return(subscription.Subscription{}, subscription.ErrInvalidTargetURL)

		h := Handlers(crudDeps(svc))

		req := httptest.NewRequest(http.MethodPost, "/subscriptions",
			strings.NewReader(`{"target_url":"nope"}`))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, KindInvalidTargetURL, resp.Kind)
	})
}

func TestGetSubscription(t *testing.T) {
	t.Run("unknown id is a 404", func(t *testing.T) {
		svc := mocks.NewUseCase(t)
		svc.On("Get", mock.Anything, testSubID).
			Return(subscription.Subscription{}, subscription.ErrNotFound)

		h := Handlers(crudDeps(svc))

		req := httptest.NewRequest(http.MethodGet, "/subscriptions/"+testSubID, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListSubscriptions(t *testing.T) {
	svc := mocks.NewUseCase(t)
	svc.On("List", mock.Anything, 100, 0).Return([]subscription.Subscription{
		{ID: testSubID, TargetURL: "https://example.com"},
	}, nil)

	h := Handlers(crudDeps(svc))

	req := httptest.NewRequest(http.MethodGet, "/subscriptions", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []subscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestPatchSubscription(t *testing.T) {
	svc := mocks.NewUseCase(t)
	newURL := "https://new.example.com"
	svc.On("Patch", mock.Anything, testSubID, subscription.Update{TargetURL: &newURL}).
		Return(subscription.Subscription{ID: testSubID, TargetURL: newURL}, nil)

	h := Handlers(crudDeps(svc))

	req := httptest.NewRequest(http.MethodPatch, "/subscriptions/"+testSubID,
		strings.NewReader(`{"target_url":"https://new.example.com"}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp subscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, newURL, resp.TargetURL)
}

func TestDeleteSubscription(t *testing.T) {
	t.Run("replies 204 on success", func(t *testing.T) {
		svc := mocks.NewUseCase(t)
		svc.On("Delete", mock.Anything, testSubID).Return(nil)

		h := Handlers(crudDeps(svc))

		req := httptest.NewRequest(http.MethodDelete, "/subscriptions/"+testSubID, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		svc := mocks.NewUseCase(t)
		svc.On("Delete", mock.Anything, testSubID).Return(subscription.ErrNotFound)

		h := Handlers(crudDeps(svc))

		req := httptest.NewRequest(http.MethodDelete, "/subscriptions/"+testSubID, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
