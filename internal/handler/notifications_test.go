package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/laiff-festival/internal/service"
)

func TestNotificationHandler(t *testing.T) {
	e := newTestEcho()
	_, store := newAdminHandler(t)
	h := NewNotificationHandler(service.NewNotificationService(store.Notifications, time.Now))

	rec := call(t, e, h.List, http.MethodGet, "/v1/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list service.NotificationList
	decode(t, rec, &list)
	require.Len(t, list.Items, 4)
	assert.Equal(t, 2, list.Unread)

	rec = call(t, e, h.MarkRead, http.MethodPost, "/v1/notifications/x/read", "", "id", list.Items[0].ID)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = call(t, e, h.MarkRead, http.MethodPost, "/v1/notifications/missing/read", "", "id", "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, e, h.MarkAllRead, http.MethodPost, "/v1/notifications/read-all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":1}`, rec.Body.String())
}
