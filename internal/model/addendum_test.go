package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftAddendum() *Addendum {
	return &Addendum{
		ID:              uuid.New(),
		OrgID:           uuid.New(),
		ContractID:      uuid.New(),
		Type:            AddendumTypeRentChange,
		SignatureStatus: SignatureStatusDraft,
	}
}

func TestAddendumSignIsIdempotent(t *testing.T) {
	addendum := draftAddendum()
	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, addendum.MarkAsSigned(first))
	assert.Equal(t, SignatureStatusSigned, addendum.SignatureStatus)

	later := first.Add(48 * time.Hour)
	require.NoError(t, addendum.MarkAsSigned(later))
	require.NotNil(t, addendum.SignedAt)
	assert.Equal(t, first, *addendum.SignedAt, "re-signing must keep the original date")
}

func TestAddendumRejectionIsTerminal(t *testing.T) {
	addendum := draftAddendum()
	require.NoError(t, addendum.Reject())

	require.ErrorIs(t, addendum.MarkAsSigned(time.Now()), ErrValidation)
	assert.Equal(t, SignatureStatusRejected, addendum.SignatureStatus)
	assert.Nil(t, addendum.SignedAt)

	require.NoError(t, addendum.Reject(), "rejecting twice is a no-op")
}

func TestSignedAddendumCannotBeRejected(t *testing.T) {
	addendum := draftAddendum()
	require.NoError(t, addendum.MarkAsSigned(time.Now()))
	require.ErrorIs(t, addendum.Reject(), ErrValidation)
}

func TestAddendumDocumentIDs(t *testing.T) {
	addendum := draftAddendum()

	ids, err := addendum.DocumentIDs()
	require.NoError(t, err)
	assert.Nil(t, ids)

	first, second := uuid.New(), uuid.New()
	addendum.AttachedDocumentIDs = fmt.Sprintf(`["%s","%s"]`, first, second)
	ids, err = addendum.DocumentIDs()
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)

	addendum.AttachedDocumentIDs = `{"broken":`
	_, err = addendum.DocumentIDs()
	require.Error(t, err)
}

func TestDocumentMarkAsSignedKeepsFirstSignature(t *testing.T) {
	signer := uuid.New()
	doc := &Document{ID: uuid.New(), Type: DocumentTypeAddendum, Status: DocumentStatusDraft}

	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	doc.MarkAsSigned(first, signer)
	assert.Equal(t, DocumentStatusSigned, doc.Status)

	doc.MarkAsSigned(first.Add(time.Hour), uuid.New())
	require.NotNil(t, doc.SignedAt)
	assert.Equal(t, first, *doc.SignedAt)
	assert.Equal(t, signer, *doc.SignedBy)
}
