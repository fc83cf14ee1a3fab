// Package service contains the business logic layer: it enforces the rules
// the handlers must not care about and knows nothing about HTTP itself.
//
// The dependency chain mirrors the usual three layers:
//
//	Handler (HTTP)  →  Service (rules)  →  Repository (storage)
//
// Services accept interfaces and primitives, return domain errors from
// internal/apperror, and log business events with slog.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/catalog"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/repository"
)

// ClassService handles the class catalog rules.
//
// The admin console validates drafts before they ever reach the network, but
// the API cannot assume a well-behaved client — anyone with credentials and
// curl can POST here. The service therefore re-checks every payload with the
// same constraints, expressed as validator struct tags on model.Class plus
// the few rules tags cannot carry (teacher pattern, fee precision, date
// ordering).
type ClassService struct {
	repo     repository.ClassRepository
	validate *validator.Validate
	logger   *slog.Logger
}

// NewClassService creates a ClassService. The validator instance is built
// here once — compiling tag metadata per request would be wasteful.
func NewClassService(repo repository.ClassRepository, logger *slog.Logger) *ClassService {
	return &ClassService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// checkClass validates an incoming canonical record. Struct tags cover the
// shape; the extra checks reuse the catalog package's draft rules, which are
// the single source of truth for field-level message wording.
func (s *ClassService) checkClass(class *model.Class) error {
	class.Title = strings.TrimSpace(class.Title)
	class.Subject = strings.TrimSpace(class.Subject)
	class.Grade = strings.TrimSpace(class.Grade)
	class.Teacher = strings.TrimSpace(class.Teacher)
	class.Schedule = strings.TrimSpace(class.Schedule)
	class.Room = strings.TrimSpace(class.Room)
	class.Currency = strings.ToUpper(strings.TrimSpace(class.Currency))

	if err := s.validate.Struct(class); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := jsonFieldName(verrs[0].Field())
			return apperror.ValidationFailed(field,
				fmt.Sprintf("invalid value for %s", field))
		}
		return apperror.ValidationFailed("", "invalid class payload")
	}

	// The draft validator holds the precise field rules (teacher name
	// pattern, fee decimals, date ordering). Run the canonical record back
	// through it so the API and the console can never disagree. Only the
	// first failing field (in form order) is reported.
	if errs := catalog.Validate(catalog.DraftOf(*class)); len(errs) > 0 {
		for _, field := range catalog.FieldOrder {
			if msg, ok := errs[field]; ok {
				return apperror.ValidationFailed(field, msg)
			}
		}
	}

	return nil
}

// Create validates and saves a new class. The repository assigns the ID.
func (s *ClassService) Create(ctx context.Context, class *model.Class) (*model.Class, error) {
	if err := s.checkClass(class); err != nil {
		return nil, err
	}
	class.ID = "" // server-assigned, never client-chosen

	if err := s.repo.Create(ctx, class); err != nil {
		s.logger.Error("failed to create class",
			slog.String("title", class.Title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating class: %w", err)
	}

	s.logger.Info("class created",
		slog.String("id", class.ID),
		slog.String("title", class.Title),
	)

	return class, nil
}

// GetByID retrieves a single class.
func (s *ClassService) GetByID(ctx context.Context, id string) (*model.Class, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "class ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// List returns the whole catalog.
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list classes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing classes: %w", err)
	}
	return classes, nil
}

// Update replaces the record with the given id (full-record PUT semantics).
// Returns NotFound when the target no longer exists.
func (s *ClassService) Update(ctx context.Context, id string, class *model.Class) (*model.Class, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "class ID is required")
	}
	if err := s.checkClass(class); err != nil {
		return nil, err
	}

	class.ID = id
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, err
	}

	s.logger.Info("class updated",
		slog.String("id", id),
		slog.String("title", class.Title),
	)

	return class, nil
}

// Delete removes a class by id.
func (s *ClassService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "class ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("class deleted", slog.String("id", id))
	return nil
}

// jsonFieldName lowercases the first rune of a struct field name, matching
// the JSON tags (Title → title, StartDate → startDate).
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
