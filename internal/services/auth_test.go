package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pathways-backend/internal/pkg/ctxutil"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	svc := NewAuthService(testLogger(t), "test-secret", time.Hour)

	token, err := svc.GenerateAccessToken(studentID)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	ctx, err = svc.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("request data not set on context")
	}
	if rd.StudentID != studentID {
		t.Fatalf("student id = %s, want %s", rd.StudentID, studentID)
	}
	if ctxutil.StudentID(ctx) != studentID {
		t.Fatalf("ctxutil.StudentID mismatch")
	}
}

func TestSetContextFromTokenEmptyString(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(testLogger(t), "test-secret", time.Hour)

	ctx, err := svc.SetContextFromToken(ctx, "")
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if ctxutil.GetRequestData(ctx) != nil {
		t.Fatalf("empty token must not attach request data")
	}
	if ctxutil.StudentID(ctx) != uuid.Nil {
		t.Fatalf("anonymous context must report uuid.Nil")
	}
}

func TestSetContextFromTokenRejectsWrongKey(t *testing.T) {
	ctx := context.Background()
	issuer := NewAuthService(testLogger(t), "secret-a", time.Hour)
	verifier := NewAuthService(testLogger(t), "secret-b", time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := verifier.SetContextFromToken(ctx, token); err == nil {
		t.Fatalf("expected error for token signed with a different key")
	}
}

func TestSetContextFromTokenRejectsExpired(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(testLogger(t), "test-secret", -time.Minute)

	token, err := svc.GenerateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}
