package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ostaapp/osta-backend/api/middleware"
	"github.com/ostaapp/osta-backend/internal/bookings"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
)

// requestActor rebuilds the acting user from the authenticated context.
func requestActor(r *http.Request) (bookings.Actor, error) {
	rawID := middleware.UserIDFromContext(r.Context())
	if rawID == "" {
		return bookings.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return bookings.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return bookings.Actor{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}
	return bookings.Actor{UserID: userID, Role: role}, nil
}

func requestUserID(r *http.Request) (uuid.UUID, error) {
	actor, err := requestActor(r)
	if err != nil {
		return uuid.Nil, err
	}
	return actor.UserID, nil
}
