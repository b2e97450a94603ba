package invoices

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/shared"
)

type memoryRepo struct {
	invoices []Invoice
	nextID   int
	failNext error
}

func (r *memoryRepo) List(ctx context.Context, companyID string) ([]Invoice, error) {
	out := make([]Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(ctx context.Context, companyID, id string) (Invoice, error) {
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.ID == id {
			return inv, nil
		}
	}
	return Invoice{}, shared.ErrNotFound
}

// Insert enforces the same case-insensitive uniqueness the store's index
// does, so commit-time collisions are reproducible in memory.
func (r *memoryRepo) Insert(ctx context.Context, companyID string, payload WritePayload) (string, error) {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return "", err
	}
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && strings.EqualFold(inv.RefID, payload.RefID) {
			return "", ErrDuplicateRefID
		}
	}
	r.nextID++
	id := fmt.Sprintf("i-%d", r.nextID)
	r.invoices = append(r.invoices, Invoice{
		ID:               id,
		CompanyID:        companyID,
		Status:           payload.Status,
		Date:             payload.Date,
		RefID:            payload.RefID,
		Provider:         payload.Provider,
		ProviderInitials: payload.ProviderInitials,
		ProviderColor:    payload.ProviderColor,
		Total:            payload.Total,
		FileName:         payload.FileName,
		FileURL:          payload.FileURL,
		FileType:         payload.FileType,
		CreatedAt:        time.Now().UTC(),
	})
	return id, nil
}

func (r *memoryRepo) Update(ctx context.Context, companyID, id string, payload WritePayload) error {
	for i, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.ID == id {
			r.invoices[i].Status = payload.Status
			r.invoices[i].Date = payload.Date
			r.invoices[i].RefID = payload.RefID
			r.invoices[i].Provider = payload.Provider
			r.invoices[i].ProviderInitials = payload.ProviderInitials
			r.invoices[i].ProviderColor = payload.ProviderColor
			r.invoices[i].Total = payload.Total
			r.invoices[i].FileName = payload.FileName
			r.invoices[i].FileURL = payload.FileURL
			r.invoices[i].FileType = payload.FileType
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memoryRepo) Delete(ctx context.Context, companyID, id string) error {
	for i, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

type recordedActivities struct {
	entries []activity.Entry
}

func (a *recordedActivities) Record(ctx context.Context, entry activity.Entry) error {
	a.entries = append(a.entries, entry)
	return nil
}

type countingRefresher struct {
	calls int
}

func (r *countingRefresher) Refresh(ctx context.Context, companyID string) error {
	r.calls++
	return nil
}

func newTestService(repo *memoryRepo, acts ActivityPort, refresher Refresher) *Service {
	gen := NewGeneratorWith(rand.New(rand.NewSource(42)), time.Now)
	return NewService(repo, gen, acts, refresher)
}

func TestSaveInsertGeneratesRefIDAndRefetches(t *testing.T) {
	repo := &memoryRepo{}
	acts := &recordedActivities{}
	refresher := &countingRefresher{}
	svc := newTestService(repo, acts, refresher)

	err := svc.Save(context.Background(), "co-1", SaveInput{
		Provider: "Acme Supplies", Date: "2025-06-03", Total: "€1,250.00",
		Status: StatusPending, Actor: "alice@example.com",
	})
	require.NoError(t, err)
	require.Len(t, repo.invoices, 1)

	saved := repo.invoices[0]
	require.Regexp(t, refIDPattern, saved.RefID)
	require.Equal(t, "AS", saved.ProviderInitials)
	require.Contains(t, providerPalette, saved.ProviderColor)
	require.InDelta(t, 1250.0, saved.Total, 0.001)

	require.Len(t, acts.entries, 1)
	require.Equal(t, activity.KindInvoice, acts.entries[0].Kind)
	require.Equal(t, "created invoice", acts.entries[0].Action)
	require.Equal(t, saved.RefID, acts.entries[0].Target)
	require.Equal(t, 1, refresher.calls)
}

func TestSaveRejectsDuplicateRefIDCaseInsensitively(t *testing.T) {
	repo := &memoryRepo{invoices: []Invoice{
		{ID: "i-1", CompanyID: "co-1", RefID: "inv-aaa111", Provider: "Acme"},
	}}
	svc := newTestService(repo, nil, nil)

	err := svc.Save(context.Background(), "co-1", SaveInput{
		Provider: "Beta Corp", Date: "2025-06-01", Total: "10",
		Status: StatusPaid, RefID: "INV-AAA111",
	})
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "Reference ID already exists", fields["refId"])
	require.Len(t, repo.invoices, 1)
}

func TestSaveEditKeepsOwnRefIDAndColor(t *testing.T) {
	repo := &memoryRepo{invoices: []Invoice{
		{ID: "i-1", CompanyID: "co-1", RefID: "INV-AAA111", Provider: "Acme",
			ProviderColor: "bg-teal-100 text-teal-600",
			FileName:      "receipt.pdf", FileURL: "data:application/pdf;base64,aGk=", FileType: "pdf"},
	}}
	acts := &recordedActivities{}
	svc := newTestService(repo, acts, nil)

	err := svc.Save(context.Background(), "co-1", SaveInput{
		ID: "i-1", Provider: "Acme Supplies", Date: "2025-06-10",
		Total: "99.50", Status: StatusPaid, RefID: "INV-AAA111",
	})
	require.NoError(t, err)

	saved := repo.invoices[0]
	require.Equal(t, "bg-teal-100 text-teal-600", saved.ProviderColor)
	require.Equal(t, "receipt.pdf", saved.FileName)
	require.Equal(t, "pdf", saved.FileType)
	require.Equal(t, StatusPaid, saved.Status)
	require.Equal(t, "updated invoice", acts.entries[0].Action)
}

func TestSaveValidationMessages(t *testing.T) {
	svc := newTestService(&memoryRepo{}, nil, nil)

	err := svc.Save(context.Background(), "co-1", SaveInput{
		Provider: "  ", Date: "June 3rd", Total: "abc", Status: "Settled",
	})
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "Provider name is required", fields["provider"])
	require.Equal(t, "Invalid date format", fields["date"])
	require.Equal(t, "Invalid amount format", fields["total"])
	require.Equal(t, "Invalid status", fields["status"])
}

func TestSaveNegativeAmountRejected(t *testing.T) {
	svc := newTestService(&memoryRepo{}, nil, nil)

	err := svc.Save(context.Background(), "co-1", SaveInput{
		Provider: "Acme", Date: "2025-06-01", Total: "-5", Status: StatusDraft,
	})
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "Amount must not be negative", fields["total"])
}

func TestSaveCommitTimeDuplicateMapsToFieldError(t *testing.T) {
	repo := &memoryRepo{failNext: ErrDuplicateRefID}
	refresher := &countingRefresher{}
	svc := newTestService(repo, nil, refresher)

	err := svc.Save(context.Background(), "co-1", SaveInput{
		Provider: "Acme", Date: "2025-06-01", Total: "10", Status: StatusPaid,
	})
	fields, ok := shared.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "Reference ID already exists", fields["refId"])
	require.Zero(t, refresher.calls)
}

func TestSaveBackendErrorSurfacesWithoutRefetch(t *testing.T) {
	repo := &memoryRepo{failNext: fmt.Errorf("connection reset")}
	refresher := &countingRefresher{}
	svc := newTestService(repo, nil, refresher)

	err := svc.Save(context.Background(), "co-1", SaveInput{
		Provider: "Acme", Date: "2025-06-01", Total: "10", Status: StatusPaid,
	})
	var be *shared.BackendError
	require.ErrorAs(t, err, &be)
	require.Contains(t, err.Error(), "connection reset")
	require.Zero(t, refresher.calls)
}

func TestEncodeAttachment(t *testing.T) {
	att, err := EncodeAttachment("scan.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "image", att.FileType)
	require.True(t, strings.HasPrefix(att.FileURL, "data:image/png;base64,"))

	att, err = EncodeAttachment("doc.pdf", "application/pdf", []byte("hello"))
	require.NoError(t, err)
	require.Equal(t, "pdf", att.FileType)

	_, err = EncodeAttachment("big.pdf", "application/pdf", make([]byte, MaxAttachmentSize+1))
	require.ErrorIs(t, err, ErrAttachmentTooLarge)
}

func TestViewFormatsTotalAndDate(t *testing.T) {
	inv := Invoice{
		ID: "i-1", Status: StatusPaid, RefID: "INV-ABC123",
		Provider: "Acme Supplies", ProviderInitials: "AS",
		Total: 1250.5, Date: time.Date(2025, 6, 3, 15, 4, 5, 0, time.UTC),
	}
	v := NewView(inv)
	require.Equal(t, "€1250.50", v.Total)
	require.Equal(t, "2025-06-03", v.Date)
	require.Equal(t, "Paid", v.Status)
}
