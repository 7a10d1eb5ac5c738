package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validationf("missing field"), http.StatusBadRequest},
		{"conflict", Conflictf("duplicate"), http.StatusBadRequest},
		{"authentication", Authenticationf("bad credentials"), http.StatusBadRequest},
		{"insufficient funds", InsufficientFundsf("too poor"), http.StatusBadRequest},
		{"unsupported payment", UnsupportedPaymentf("no cards"), http.StatusBadRequest},
		{"not found", NotFoundf("gone"), http.StatusNotFound},
		{"store", Storef(errors.New("boom"), "query failed"), http.StatusInternalServerError},
		{"unclassified", errors.New("anything"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("%s: Status() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestMessage(t *testing.T) {
	err := InsufficientFundsf("Insufficient balance. You have $%.2f but need $%.2f", 10.0, 90.0)
	if err.Error() != "Insufficient balance. You have $10.00 but need $90.00" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("checkout: %w", NotFoundf("Product not found"))
	if !IsKind(err, KindNotFound) {
		t.Error("expected wrapped error to keep its kind")
	}
	if Status(err) != http.StatusNotFound {
		t.Error("expected wrapped error to keep its status")
	}
}

func TestStoreUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storef(cause, "fetching user: %v", cause)
	if !errors.Is(err, cause) {
		t.Error("expected Storef to wrap the cause")
	}
}
