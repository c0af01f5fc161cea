package apperrors

import (
	"errors"
	"net/http"
	"testing"
)

func TestPublicMessage_UsesSafeMessage(t *testing.T) {
	sentinel := errors.New("SECRET_VALUE")
	err := New(KindAuth, "Invalid Stremio auth key.", sentinel)
	if got := PublicMessage(err); got != "Invalid Stremio auth key." {
		t.Fatalf("PublicMessage() = %q, want %q", got, "Invalid Stremio auth key.")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped cause to be retained for internal matching")
	}
}

func TestRemote_DetailAndFallback(t *testing.T) {
	err := Remote(http.StatusNotFound, "Account not found.")
	if got := PublicMessage(err); got != "Account not found." {
		t.Fatalf("PublicMessage() = %q", got)
	}
	var e *Error
	if !errors.As(err, &e) || e.Status != http.StatusNotFound {
		t.Fatalf("expected status to be kept, got %+v", e)
	}

	blank := Remote(http.StatusBadGateway, "   ")
	if got := PublicMessage(blank); got != defaultSafeMessage(KindRemote) {
		t.Fatalf("PublicMessage() = %q, want generic remote message", got)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "validation", err: Validation("Email is required."), want: KindValidation},
		{name: "transport", err: Transport(errors.New("dial tcp")), want: KindTransport},
		{name: "busy", err: Busy("submit"), want: KindBusy},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kind, ok := KindOf(tc.err)
			if !ok || kind != tc.want {
				t.Fatalf("KindOf() = (%q, %v), want (%q, true)", kind, ok, tc.want)
			}
			if !Is(tc.err, tc.want) {
				t.Fatalf("Is(%q) = false", tc.want)
			}
		})
	}
}

func TestTransport_HidesCause(t *testing.T) {
	err := Transport(errors.New("dial tcp 10.0.0.1:443: connection refused"))
	if got := PublicMessage(err); got != defaultSafeMessage(KindTransport) {
		t.Fatalf("PublicMessage() leaked cause: %q", got)
	}
}

func TestPublicMessage_NonAppError(t *testing.T) {
	err := errors.New("plain")
	if got := PublicMessage(err); got != "plain" {
		t.Fatalf("PublicMessage() = %q, want %q", got, "plain")
	}
	if _, ok := KindOf(err); ok {
		t.Fatalf("KindOf() on plain error should report false")
	}
}
