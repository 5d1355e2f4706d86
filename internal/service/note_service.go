package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"simple-notes-server/internal/domain"
	"simple-notes-server/internal/repository"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const listCacheSize = 256

// NoteService owns validation and the ownership rules for note access.
// Every operation takes the resolved identity explicitly; there is no
// ambient or global identity. Cross-owner access is reported as
// domain.ErrNoteNotFound so existence never leaks between users.
type NoteService struct {
	repo      repository.NoteRepository
	listCache *lru.Cache[string, []*domain.Note]
}

func NewNoteService(repo repository.NoteRepository) *NoteService {
	cache, _ := lru.New[string, []*domain.Note](listCacheSize)
	return &NoteService{
		repo:      repo,
		listCache: cache,
	}
}

func (s *NoteService) Create(ctx context.Context, userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	if err := validateNote(req.Title, req.Content); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &domain.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.listCache.Remove(userID)
	return note, nil
}

func (s *NoteService) List(ctx context.Context, userID string) ([]*domain.Note, error) {
	if notes, ok := s.listCache.Get(userID); ok {
		return notes, nil
	}

	notes, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*domain.Note{}
	}

	s.listCache.Add(userID, notes)
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	return s.repo.FindByID(ctx, userID, noteID)
}

func (s *NoteService) Update(ctx context.Context, userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	if err := validateNote(req.Title, req.Content); err != nil {
		return nil, err
	}

	note, err := s.repo.FindByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Content = req.Content
	note.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.listCache.Remove(userID)
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, userID, noteID string) error {
	if err := s.repo.Delete(ctx, userID, noteID); err != nil {
		return err
	}

	s.listCache.Remove(userID)
	return nil
}

func validateNote(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return &domain.ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return &domain.ValidationError{Field: "title", Message: "title must be at most 200 characters"}
	}
	if strings.TrimSpace(content) == "" {
		return &domain.ValidationError{Field: "content", Message: "content is required"}
	}
	if utf8.RuneCountInString(content) > domain.MaxContentLength {
		return &domain.ValidationError{Field: "content", Message: "content must be at most 10000 characters"}
	}
	return nil
}
