package domain

import "time"

// Session is a named brainstorming session owning an ordered list of ideas.
// ID is assigned by the repository; Ideas only ever grow by AddIdea.
type Session struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"dateCreated"`
	Ideas       []Idea    `json:"ideas"`
}

// Idea is a contribution to exactly one session.
// ID is unique within its session and assigned by Session.AddIdea.
type Idea struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
}

// NewSession returns a session with no ideas and no identity yet.
func NewSession(name string, createdAt time.Time) *Session {
	return &Session{
		Name:        name,
		DateCreated: createdAt,
		Ideas:       []Idea{},
	}
}

// AddIdea assigns idea the next id in the session and appends it last.
func (s *Session) AddIdea(idea *Idea) {
	next := 1
	if n := len(s.Ideas); n > 0 {
		next = s.Ideas[n-1].ID + 1
	}
	idea.ID = next
	s.Ideas = append(s.Ideas, *idea)
}

// Clone returns a deep copy so stores can hand out snapshots.
func (s *Session) Clone() *Session {
	c := *s
	c.Ideas = make([]Idea, len(s.Ideas))
	copy(c.Ideas, s.Ideas)
	return &c
}

// SessionSummary is the list view of a session.
type SessionSummary struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"dateCreated"`
	IdeaCount   int       `json:"ideaCount"`
}

// SessionView is the detail view of a session.
type SessionView struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	DateCreated time.Time `json:"dateCreated"`
}

// IdeaDTO is the transport shape of an idea.
type IdeaDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateCreated time.Time `json:"dateCreated"`
}

// Summary returns the list view, counting the session's ideas.
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:          s.ID,
		Name:        s.Name,
		DateCreated: s.DateCreated,
		IdeaCount:   len(s.Ideas),
	}
}

// View returns the detail view without ideas.
func (s *Session) View() SessionView {
	return SessionView{
		ID:          s.ID,
		Name:        s.Name,
		DateCreated: s.DateCreated,
	}
}

// IdeaDTOs maps the session's ideas in order.
func (s *Session) IdeaDTOs() []IdeaDTO {
	dtos := make([]IdeaDTO, 0, len(s.Ideas))
	for _, idea := range s.Ideas {
		dtos = append(dtos, idea.DTO())
	}
	return dtos
}

// DTO returns the transport shape of the idea.
func (i Idea) DTO() IdeaDTO {
	return IdeaDTO{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		DateCreated: i.DateCreated,
	}
}

// NewSessionRequest is the input of session creation.
type NewSessionRequest struct {
	Name string `json:"name" validate:"required"`
}

// NewIdeaRequest is the input of idea creation.
type NewIdeaRequest struct {
	SessionID   int    `json:"sessionId"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}
