package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/estateview/realty-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCodec_IssueVerify_RoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 30, 45, 999, time.UTC)
	codec := NewCodec("secret", WithClock(fixedClock(now)))

	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin} {
		token, err := codec.Issue("64b7f0c2a1b2c3d4e5f60718", role)
		if err != nil {
			t.Fatalf("issue %s: %v", role, err)
		}

		id, err := codec.Verify(token)
		if err != nil {
			t.Fatalf("verify %s: %v", role, err)
		}
		if id.SubjectID != "64b7f0c2a1b2c3d4e5f60718" {
			t.Fatalf("unexpected subject: %s", id.SubjectID)
		}
		if id.Role != role {
			t.Fatalf("expected role %s, got %s", role, id.Role)
		}
		if got := id.ExpiresAt.Sub(id.IssuedAt); got != 7*24*time.Hour {
			t.Fatalf("expected 7 day lifetime, got %s", got)
		}
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := NewCodec("secret", WithClock(fixedClock(issuedAt))).Issue("user-1", domain.RoleBuyer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	later := NewCodec("secret", WithClock(fixedClock(issuedAt.Add(TokenTTL+time.Second))))
	if _, err := later.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	token, err := NewCodec("secret").Issue("user-1", domain.RoleBuyer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewCodec("other").Verify(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Verify_Garbage(t *testing.T) {
	codec := NewCodec("secret")
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := codec.Verify(token); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("%q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestCodec_Verify_TamperedPayload(t *testing.T) {
	codec := NewCodec("secret")
	token, err := codec.Issue("user-1", domain.RoleBuyer)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other, err := codec.Issue("user-2", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// header and signature of the first token, claims of the second
	a := splitToken(t, token)
	b := splitToken(t, other)
	forged := a[0] + "." + b[1] + "." + a[2]

	if _, err := codec.Verify(forged); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Verify_RejectsOtherAlgorithms(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":   "user-1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewCodec("secret").Verify(signed); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Verify_AlternateSubjectClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	cases := map[string]jwt.MapClaims{
		"_id": {"_id": "legacy-1", "role": "seller", "exp": exp},
		"sub": {"sub": "legacy-1", "role": "seller", "exp": exp},
	}

	codec := NewCodec("secret")
	for name, mc := range cases {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("%s: sign: %v", name, err)
		}
		id, err := codec.Verify(signed)
		if err != nil {
			t.Fatalf("%s: verify: %v", name, err)
		}
		if id.SubjectID != "legacy-1" || id.Role != domain.RoleSeller {
			t.Fatalf("%s: unexpected identity %+v", name, id)
		}
	}
}

func TestCodec_Verify_RequiresExpiry(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user-1",
		"role": "buyer",
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewCodec("secret").Verify(signed); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Verify_UnknownRole(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   "user-1",
		"role": "superuser",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewCodec("secret").Verify(signed); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_MissingSecret(t *testing.T) {
	codec := NewCodec("")

	if _, err := codec.Issue("user-1", domain.RoleBuyer); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("issue: expected ErrMissingSecret, got %v", err)
	}
	if _, err := codec.Verify("a.b.c"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("verify: expected ErrMissingSecret, got %v", err)
	}
}

func TestCodec_Issue_RejectsBadInput(t *testing.T) {
	codec := NewCodec("secret")
	if _, err := codec.Issue("", domain.RoleBuyer); err == nil {
		t.Fatalf("expected error for empty subject")
	}
	if _, err := codec.Issue("user-1", domain.Role("guest")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func splitToken(t *testing.T, token string) [3]string {
	t.Helper()
	var parts [3]string
	start, n := 0, 0
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			parts[n] = token[start:i]
			n++
			start = i + 1
		}
	}
	if n != 2 {
		t.Fatalf("token has %d separators", n)
	}
	parts[2] = token[start:]
	return parts
}
