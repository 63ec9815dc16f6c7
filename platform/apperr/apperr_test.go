package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatusPerKind(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindUnprocessable, http.StatusUnprocessableEntity},
		{KindInternal, http.StatusInternalServerError},
		{KindUnknown, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := New(tc.kind, "msg").HTTPStatus(); got != tc.want {
			t.Errorf("kind %d status = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("pool closed")
	err := Wrap(KindInternal, "failed to list", cause)

	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable via errors.Is")
	}
	if GetKind(err) != KindInternal {
		t.Fatalf("kind = %d, want internal", GetKind(err))
	}
}

func TestGetKindUntypedError(t *testing.T) {
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatal("expected unknown kind for untyped error")
	}
	if GetKind(nil) != KindUnknown {
		t.Fatal("expected unknown kind for nil")
	}
}
