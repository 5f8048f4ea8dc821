package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/koinonia-dev/koinonia/internal/domain"
	internal_errors "github.com/koinonia-dev/koinonia/internal/errors"
)

type PostStorage interface {
	CreatePost(creationData domain.PostCreationData) (domain.PostId, error)
	EditPost(id domain.PostId, threadId domain.ThreadId, owner domain.Username, content string) error
	DeletePost(id domain.PostId, owner domain.Username) error
}

type Post struct {
	storage  PostStorage
	validate *validator.Validate
}

func NewPost(storage PostStorage) *Post {
	return &Post{storage, validator.New(validator.WithRequiredStructEnabled())}
}

type postForm struct {
	Content string `validate:"required,max=1000"`
}

func (s *Post) validateForm(content string) error {
	err := s.validate.Struct(postForm{Content: content})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var messages []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			messages = append(messages, "Post requires one or more characters.")
		} else {
			messages = append(messages, "Post must be between 1 and 1000 characters.")
		}
	}
	return &internal_errors.ValidationError{Messages: messages}
}

func (s *Post) Create(creationData domain.PostCreationData) (domain.PostId, error) {
	if err := s.validateForm(creationData.Content); err != nil {
		return -1, err
	}
	return s.storage.CreatePost(creationData)
}

func (s *Post) Edit(id domain.PostId, threadId domain.ThreadId, owner domain.Username, content string) error {
	if err := s.validateForm(content); err != nil {
		return err
	}
	return s.storage.EditPost(id, threadId, owner, content)
}

func (s *Post) Delete(id domain.PostId, owner domain.Username) error {
	return s.storage.DeletePost(id, owner)
}
