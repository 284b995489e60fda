package service

import (
	"testing"

	"go-skystore/internal/model"
	"go-skystore/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContacts(t *testing.T) {
	contactsRepo := &fakeContactsRepo{}
	svc := NewContactService(contactsRepo, &fakeFeedbackRepo{})

	_, err := svc.GetContacts()
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, contactsRepo.Seed(&model.ContactsData{
		Country: "Russia",
		TaxID:   "7707083893",
		Address: "Moscow, Skystore HQ",
	}))

	data, err := svc.GetContacts()
	require.NoError(t, err)
	assert.Equal(t, "Russia", data.Country)
	assert.Equal(t, "7707083893", data.TaxID)
}

func TestSubmitFeedback(t *testing.T) {
	feedbackRepo := &fakeFeedbackRepo{}
	svc := NewContactService(&fakeContactsRepo{}, feedbackRepo)

	feedback, err := svc.SubmitFeedback(&FeedbackRequest{
		Name:    "Ivan",
		Phone:   "+79000000000",
		Message: "When will the weather plugin support my city?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ivan", feedback.Name)

	stored, err := svc.ListFeedback()
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSubmitFeedbackRequiresAllFields(t *testing.T) {
	feedbackRepo := &fakeFeedbackRepo{}
	svc := NewContactService(&fakeContactsRepo{}, feedbackRepo)

	tests := []struct {
		name string
		req  *FeedbackRequest
	}{
		{"missing name", &FeedbackRequest{Phone: "+79000000000", Message: "hi"}},
		{"missing phone", &FeedbackRequest{Name: "Ivan", Message: "hi"}},
		{"missing message", &FeedbackRequest{Name: "Ivan", Phone: "+79000000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitFeedback(tt.req)
			require.Error(t, err)
			var fieldErr *validation.FieldError
			assert.ErrorAs(t, err, &fieldErr)
		})
	}

	stored, err := svc.ListFeedback()
	require.NoError(t, err)
	assert.Empty(t, stored, "rejected feedback must not be persisted")
}
