package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

type ThreadStorage interface {
	CreateThread(creationData domain.ThreadCreationData) (domain.ThreadId, error)
	EditThread(id domain.ThreadId, owner domain.Username, groupName, prompt string) error
	DeleteThread(id domain.ThreadId, owner domain.Username) error
}

type Thread struct {
	storage  ThreadStorage
	validate *validator.Validate
}

func NewThread(storage ThreadStorage) *Thread {
	return &Thread{storage, validator.New(validator.WithRequiredStructEnabled())}
}

// threadForm mirrors the thread creation/edit form constraints.
type threadForm struct {
	GroupName string `validate:"required,max=100"`
	Prompt    string `validate:"max=1000"`
}

func (s *Thread) validateForm(groupName, prompt string) error {
	err := s.validate.Struct(threadForm{GroupName: groupName, Prompt: prompt})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var messages []string
	for _, fe := range fieldErrs {
		switch {
		case fe.Field() == "GroupName" && fe.Tag() == "required":
			messages = append(messages, "Group Name requires one or more characters.")
		case fe.Field() == "GroupName":
			messages = append(messages, "Group Name must be between 1 and 100 characters.")
		default:
			messages = append(messages, "Prompt must be between 1 and 1000 characters.")
		}
	}
	return &internal_errors.ValidationError{Messages: messages}
}

// Create validates the form, substitutes the default prompt when none was
// given, and returns the new thread's id.
func (s *Thread) Create(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	creationData.GroupName = strings.TrimSpace(creationData.GroupName)
	if err := s.validateForm(creationData.GroupName, creationData.Prompt); err != nil {
		return -1, err
	}

	creationData.Prompt = domain.PromptOrDefault(creationData.Prompt)
	return s.storage.CreateThread(creationData)
}

func (s *Thread) Edit(id domain.ThreadId, owner domain.Username, groupName, prompt string) error {
	groupName = strings.TrimSpace(groupName)
	if err := s.validateForm(groupName, prompt); err != nil {
		return err
	}

	return s.storage.EditThread(id, owner, groupName, domain.PromptOrDefault(prompt))
}

func (s *Thread) Delete(id domain.ThreadId, owner domain.Username) error {
	return s.storage.DeleteThread(id, owner)
}
