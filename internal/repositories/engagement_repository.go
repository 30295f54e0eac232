package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

// EngagementRepository covers newsletter subscriptions and contact enquiries.
type EngagementRepository interface {
	SubscribeNewsletter(sub *models.NewsletterSubscription) error
	CreateEnquiry(e *models.Enquiry) error
}

type engagementRepository struct {
	DB *sql.DB
}

func NewEngagementRepository(db *sql.DB) EngagementRepository {
	return &engagementRepository{DB: db}
}

func (r *engagementRepository) SubscribeNewsletter(sub *models.NewsletterSubscription) error {
	const q = `
		INSERT INTO newsletter_subscriptions (email)
		VALUES ($1)
		RETURNING id, created_at
	`
	return translate(r.DB.QueryRow(q, sub.Email).Scan(&sub.ID, &sub.CreatedAt))
}

func (r *engagementRepository) CreateEnquiry(e *models.Enquiry) error {
	const q = `
		INSERT INTO enquiries (name, email, phone, subject, message, user_id)
		VALUES ($1,$2,NULLIF($3,''),$4,$5,NULLIF($6,0))
		RETURNING id, created_at
	`
	return translate(r.DB.QueryRow(q, e.Name, e.Email, e.Phone, e.Subject, e.Message, e.UserID).
		Scan(&e.ID, &e.CreatedAt))
}

type memoryEngagementRepository struct {
	mu            sync.Mutex
	nextSubID     int
	nextEnquiryID int
	subs          map[string]*models.NewsletterSubscription
	enquiries     []*models.Enquiry
}

func NewMemoryEngagementRepository() EngagementRepository {
	return &memoryEngagementRepository{
		nextSubID:     1,
		nextEnquiryID: 1,
		subs:          make(map[string]*models.NewsletterSubscription),
	}
}

func (r *memoryEngagementRepository) SubscribeNewsletter(sub *models.NewsletterSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subs[sub.Email]; ok {
		return ErrDuplicate
	}
	sub.ID = r.nextSubID
	r.nextSubID++
	sub.CreatedAt = time.Now()
	cp := *sub
	r.subs[sub.Email] = &cp
	return nil
}

func (r *memoryEngagementRepository) CreateEnquiry(e *models.Enquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextEnquiryID
	r.nextEnquiryID++
	e.CreatedAt = time.Now()
	cp := *e
	r.enquiries = append(r.enquiries, &cp)
	return nil
}
