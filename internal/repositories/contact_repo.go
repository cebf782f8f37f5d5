package repositories

import (
	"context"

	"lexbook/internal/models"

	"github.com/google/uuid"
)

type ContactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) error
	List(ctx context.Context) ([]*models.ContactSubmission, error)
	ListUnresponded(ctx context.Context) ([]*models.ContactSubmission, error)
	MarkResponded(ctx context.Context, id uuid.UUID) error
}

type contactRepo struct {
	db Database
}

func NewContactRepo(db Database) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, submission *models.ContactSubmission) error {
	query := `
		INSERT INTO contact_submissions (id, name, email, phone_number, practice_area, preferred_contact, message, responded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW())
	`
	_, err := r.db.Exec(ctx, query, submission.ID, submission.Name, submission.Email, submission.PhoneNumber, submission.PracticeArea, submission.PreferredContact, submission.Message)
	return err
}

func (r *contactRepo) List(ctx context.Context) ([]*models.ContactSubmission, error) {
	query := `
		SELECT id, name, email, phone_number, practice_area, preferred_contact, message, responded, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
	`
	return r.scanList(ctx, query)
}

func (r *contactRepo) ListUnresponded(ctx context.Context) ([]*models.ContactSubmission, error) {
	query := `
		SELECT id, name, email, phone_number, practice_area, preferred_contact, message, responded, created_at
		FROM contact_submissions
		WHERE responded = false
		ORDER BY created_at
	`
	return r.scanList(ctx, query)
}

func (r *contactRepo) MarkResponded(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE contact_submissions SET responded = true WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *contactRepo) scanList(ctx context.Context, query string) ([]*models.ContactSubmission, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.ContactSubmission
	for rows.Next() {
		s := &models.ContactSubmission{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.PracticeArea, &s.PreferredContact, &s.Message, &s.Responded, &s.CreatedAt); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
