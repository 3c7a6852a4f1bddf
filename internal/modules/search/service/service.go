package service

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"strings"

	"mindhaven-backend/internal/entity"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const journalIndex = "journals"

// SearchService maintains the Meilisearch journal index. Journal entries are
// private, so every query is hard-filtered to the owning user.
type SearchService interface {
	IndexJournal(entry *entity.JournalEntry) error
	DeleteJournal(id string) error
	Search(userID, query string, limit int64) ([]JournalHit, error)
}

type JournalHit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"user_id"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(journalIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update journals filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(journalIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update journals sortable attributes: %v", err)
	}
}

type meiliJournalDoc struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

func (s *searchService) cleanContentForIndex(content string) string {
	// Block tags become spaces so adjacent paragraphs don't merge into one
	// word after stripping.
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexJournal(entry *entity.JournalEntry) error {
	doc := meiliJournalDoc{
		ID:        entry.ID.String(),
		UserID:    entry.UserID.String(),
		Title:     entry.Title,
		Content:   s.cleanContentForIndex(entry.Content),
		CreatedAt: entry.CreatedAt.Unix(),
	}

	task, err := s.client.Index(journalIndex).AddDocuments([]meiliJournalDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed journal %s, task id: %d", entry.ID, task.TaskUID)
	return nil
}

func (s *searchService) DeleteJournal(id string) error {
	_, err := s.client.Index(journalIndex).DeleteDocument(id)
	return err
}

func (s *searchService) Search(userID, query string, limit int64) ([]JournalHit, error) {
	if limit <= 0 {
		limit = 20
	}

	resp, err := s.client.Index(journalIndex).Search(query, &meilisearch.SearchRequest{
		Filter: fmt.Sprintf("user_id = %q", userID),
		Limit:  limit,
		Sort:   []string{"created_at:desc"},
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	var hits []JournalHit
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, err
	}
	return hits, nil
}

func strPtr(s string) *string {
	return &s
}
