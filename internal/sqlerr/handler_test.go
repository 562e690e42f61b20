package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/go-posts/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	in := errs.NewForbiddenError("no", false)
	if got := HandleError(in); got != in {
		t.Fatalf("expected same error back, got %v", got)
	}
}

func TestHandleError_NoRowsWithTableHint(t *testing.T) {
	err := HandleError(fmt.Errorf("get post table:posts: %w", pgx.ErrNoRows))

	httpErr, ok := errs.AsHTTPError(err)
	if !ok || httpErr.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if httpErr.Message != "Post not found" {
		t.Fatalf("unexpected message: %q", httpErr.Message)
	}
}

func TestHandleError_MongoNoDocuments(t *testing.T) {
	err := HandleError(mongo.ErrNoDocuments)
	httpErr, ok := errs.AsHTTPError(err)
	if !ok || httpErr.Status != http.StatusNotFound || httpErr.Message != "Resource not found" {
		t.Fatalf("expected generic 404, got %v", err)
	}
}

func TestHandleError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "profiles",
		ConstraintName: "profiles_handle_key",
	}

	err := HandleError(fmt.Errorf("insert: %w", pgErr))
	httpErr, ok := errs.AsHTTPError(err)
	if !ok || httpErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if httpErr.Code != "PROFILE_ALREADY_EXISTS" {
		t.Fatalf("unexpected code: %q", httpErr.Code)
	}
	if httpErr.Message != "A Profile with this Handle already exists" {
		t.Fatalf("unexpected message: %q", httpErr.Message)
	}
}

func TestHandleError_NotNullViolationHasFieldError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "posts", ColumnName: "text"}

	httpErr, ok := errs.AsHTTPError(HandleError(pgErr))
	if !ok || len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "text" {
		t.Fatalf("expected field error for text, got %+v", httpErr)
	}
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	httpErr, ok := errs.AsHTTPError(HandleError(errors.New("boom")))
	if !ok || httpErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %+v", httpErr)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("x: %w", pgx.ErrNoRows)) || !IsNotFound(mongo.ErrNoDocuments) {
		t.Fatalf("expected not found for driver sentinels")
	}
	if IsNotFound(errors.New("other")) {
		t.Fatalf("unexpected not found")
	}
}

func TestErrCode(t *testing.T) {
	wrapped := fmt.Errorf("x: %w", ConvertPgError(&pgconn.PgError{Code: "23503"}))
	if ErrCode(wrapped) != ForeignKeyViolation {
		t.Fatalf("expected foreign key violation")
	}
	if ErrCode(errors.New("x")) != Other {
		t.Fatalf("expected Other for plain errors")
	}
}
