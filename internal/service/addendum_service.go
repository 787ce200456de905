package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gestimo/rentd/internal/model"
	"github.com/gestimo/rentd/internal/repository"
)

// AddendumService runs the amendment signature flow, cascading the signature
// to attached draft documents of the addendum type in the same transaction.
type AddendumService struct {
	db        *gorm.DB
	addendums *repository.AddendumRepository
	log       zerolog.Logger
}

func NewAddendumService(db *gorm.DB, addendums *repository.AddendumRepository, log zerolog.Logger) *AddendumService {
	return &AddendumService{db: db, addendums: addendums, log: log}
}

func (s *AddendumService) GetAddendum(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Addendum, error) {
	addendum, err := s.addendums.Get(ctx, principal.OrgID, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return addendum, nil
}

// SignAddendum marks the addendum signed and signs every attached draft
// document of type AVENANT with the same date and signer. A malformed
// attachment payload does not block the signature: it is logged and treated
// as no attachments.
func (s *AddendumService) SignAddendum(ctx context.Context, principal model.Principal, id uuid.UUID, signedAt time.Time) (*model.Addendum, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if signedAt.IsZero() {
		signedAt = time.Now().UTC()
	}

	var addendum *model.Addendum
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loaded, err := s.addendums.WithTx(tx).Get(ctx, principal.OrgID, id)
		if err != nil {
			return notFoundOr(err)
		}
		if err := loaded.MarkAsSigned(signedAt); err != nil {
			return err
		}
		if err := s.addendums.WithTx(tx).Save(ctx, loaded); err != nil {
			return err
		}
		if err := s.cascadeToDocuments(ctx, tx, principal, loaded, signedAt); err != nil {
			return err
		}
		addendum = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addendum, nil
}

func (s *AddendumService) RejectAddendum(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Addendum, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}

	var addendum *model.Addendum
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loaded, err := s.addendums.WithTx(tx).Get(ctx, principal.OrgID, id)
		if err != nil {
			return notFoundOr(err)
		}
		if err := loaded.Reject(); err != nil {
			return err
		}
		if err := s.addendums.WithTx(tx).Save(ctx, loaded); err != nil {
			return err
		}
		addendum = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addendum, nil
}

func (s *AddendumService) cascadeToDocuments(ctx context.Context, tx *gorm.DB, principal model.Principal, addendum *model.Addendum, signedAt time.Time) error {
	ids, err := addendum.DocumentIDs()
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("addendum_id", addendum.ID.String()).
			Msg("malformed attached document payload, skipping signature cascade")
		return nil
	}

	for _, docID := range ids {
		document, err := s.addendums.WithTx(tx).GetDocument(ctx, principal.OrgID, docID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.log.Warn().
					Str("addendum_id", addendum.ID.String()).
					Str("document_id", docID.String()).
					Msg("attached document not found, skipping")
				continue
			}
			return err
		}
		if document.Type != model.DocumentTypeAddendum || document.Status != model.DocumentStatusDraft {
			continue
		}
		document.MarkAsSigned(signedAt, principal.UserID)
		if err := s.addendums.WithTx(tx).SaveDocument(ctx, document); err != nil {
			return err
		}
	}
	return nil
}
