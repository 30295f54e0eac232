package services

import (
	"errors"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

var ErrAlreadySubscribed = errors.New("email is already subscribed")

type EngagementService struct {
	engagement repositories.EngagementRepository
	notifier   *TelegramNotifier
}

func NewEngagementService(engagement repositories.EngagementRepository, notifier *TelegramNotifier) *EngagementService {
	return &EngagementService{engagement: engagement, notifier: notifier}
}

func (s *EngagementService) Subscribe(email string) (*models.NewsletterSubscription, error) {
	sub := &models.NewsletterSubscription{Email: email}
	if err := s.engagement.SubscribeNewsletter(sub); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return sub, nil
}

// SubmitEnquiry stores the contact message and pings the staff chat.
// userID is 0 for anonymous visitors.
func (s *EngagementService) SubmitEnquiry(userID int, enq *models.Enquiry) (*models.Enquiry, error) {
	enq.ID = 0
	enq.UserID = userID
	enq.IsResolved = false
	if err := s.engagement.CreateEnquiry(enq); err != nil {
		return nil, err
	}
	s.notifier.NotifyEnquiry(enq)
	return enq, nil
}
