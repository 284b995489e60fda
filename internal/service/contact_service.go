package service

import (
	"errors"

	"go-skystore/internal/model"
	"go-skystore/internal/repository"
	"go-skystore/internal/validation"
	"go-skystore/pkg/validator"

	"gorm.io/gorm"
)

type ContactService interface {
	GetContacts() (*model.ContactsData, error)
	SubmitFeedback(req *FeedbackRequest) (*model.Feedback, error)
	ListFeedback() ([]model.Feedback, error)
}

type FeedbackRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,max=15"`
	Message string `json:"message" validate:"required"`
}

type contactService struct {
	contactsRepo repository.ContactsRepository
	feedbackRepo repository.FeedbackRepository
}

func NewContactService(contactsRepo repository.ContactsRepository, feedbackRepo repository.FeedbackRepository) ContactService {
	return &contactService{
		contactsRepo: contactsRepo,
		feedbackRepo: feedbackRepo,
	}
}

func (s *contactService) GetContacts() (*model.ContactsData, error) {
	data, err := s.contactsRepo.Get()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *contactService) SubmitFeedback(req *FeedbackRequest) (*model.Feedback, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &validation.FieldError{Field: first.FailedField, Message: "failed on " + first.Tag}
	}

	feedback := &model.Feedback{
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *contactService) ListFeedback() ([]model.Feedback, error) {
	return s.feedbackRepo.FindAll()
}
