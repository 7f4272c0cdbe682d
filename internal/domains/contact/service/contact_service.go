package service

import (
	"context"
	"fmt"

	"github.com/kodalibharatheswar/AnviBoutique/internal/domains/contact"
	"github.com/kodalibharatheswar/AnviBoutique/internal/infrastructure/email"
)

type contactService struct {
	notifier email.Notifier
}

func NewContactService(notifier email.Notifier) contact.Service {
	return &contactService{notifier: notifier}
}

func (s *contactService) Submit(ctx context.Context, req contact.SubmitRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.notifier.SendContact(ctx, req.Name, req.Email, req.Message); err != nil {
		return fmt.Errorf("forward contact message: %w", err)
	}
	return nil
}
